package web

import (
	"time"

	"github.com/zeptools/pricequote/sessions"
)

type ItemView struct {
	No        int    `json:"no"` // 1-based display number
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	VATRate   string `json:"vat_rate"`
	VATPrice  string `json:"vat_price"`
}

// EditingView carries the form defaults for the item being edited.
type EditingView struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	VATRate   string `json:"vat_rate"`
}

type DocumentView struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteView is the response body of every quote-state endpoint.
// Document is present only while the cached document still matches the
// current state.
type QuoteView struct {
	Customer struct {
		Company string `json:"company"`
		Contact string `json:"contact"`
	} `json:"customer"`
	Items    []ItemView    `json:"items"`
	Count    int           `json:"count"`
	Editing  *EditingView  `json:"editing,omitzero"`
	Document *DocumentView `json:"document,omitzero"`
	Notice   string        `json:"notice,omitzero"`
}

func NewQuoteView(rec *sessions.Record) QuoteView {
	var view QuoteView
	customer := rec.State.Customer()
	view.Customer.Company = customer.Company
	view.Customer.Contact = customer.Contact

	items := rec.State.Items()
	view.Items = make([]ItemView, 0, len(items))
	for i, item := range items {
		view.Items = append(view.Items, ItemView{
			No:        i + 1,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			VATRate:   item.VATRate.String(),
			VATPrice:  item.VATPrice.StringFixed(2),
		})
	}
	view.Count = len(items)

	if item, ok := rec.State.EditingItem(); ok {
		index, _ := rec.State.EditingIndex()
		view.Editing = &EditingView{
			Index:     index,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			VATRate:   item.VATRate.String(),
		}
	}

	if rec.Doc != nil && rec.Doc.Revision == rec.State.Rev() {
		view.Document = &DocumentView{
			ID:        rec.Doc.ID,
			Filename:  rec.Doc.Filename,
			Size:      rec.Doc.Size(),
			CreatedAt: rec.Doc.CreatedAt,
		}
	}
	return view
}
