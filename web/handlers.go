package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeptools/pricequote/docs"
	"github.com/zeptools/pricequote/quote"
	"github.com/zeptools/pricequote/requests"
	"github.com/zeptools/pricequote/responses"
)

type itemPayload struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
}

type customerPayload struct {
	Company string `json:"company"`
	Contact string `json:"contact"`
}

// writeQuoteError maps domain errors to HTTP statuses.
func writeQuoteError(w http.ResponseWriter, err error) {
	var verr *quote.ValidationError
	var ierr *quote.IndexError
	var cerr *docs.CompositionError
	switch {
	case errors.As(err, &verr):
		responses.WriteSimpleErrorJSON(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.As(err, &ierr):
		responses.WriteSimpleErrorJSON(w, http.StatusNotFound, ierr.Error())
	case errors.As(err, &cerr):
		responses.WriteSimpleErrorJSON(w, http.StatusConflict, cerr.Error())
	case errors.Is(err, quote.ErrNotEditing):
		responses.WriteSimpleErrorJSON(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[ERROR][Web] %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func (app *App) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	responses.WriteSimpleInfoJSON(w, http.StatusOK, "ok")
}

func (app *App) handleView(w http.ResponseWriter, r *http.Request) {
	_, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, NewQuoteView(rec))
}

func (app *App) handleSetCustomer(w http.ResponseWriter, r *http.Request) {
	var payload customerPayload
	if err := requests.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	rec.State.SetCustomer(quote.CustomerInfo{Company: payload.Company, Contact: payload.Contact})
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, NewQuoteView(rec))
}

func (app *App) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := requests.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if _, err = rec.State.Add(payload.Name, payload.UnitPrice, payload.VATRate); err != nil {
		writeQuoteError(w, err)
		return
	}
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, NewQuoteView(rec))
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, &quote.IndexError{Index: -1, Len: 0}
	}
	return index, nil
}

func (app *App) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if _, err = rec.State.BeginEdit(index); err != nil {
		writeQuoteError(w, err)
		return
	}
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, NewQuoteView(rec))
}

func (app *App) handleCommitEdit(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := requests.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if _, err = rec.State.CommitEdit(payload.Name, payload.UnitPrice, payload.VATRate); err != nil {
		writeQuoteError(w, err)
		return
	}
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, NewQuoteView(rec))
}

func (app *App) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	canceled := rec.State.CancelEdit()
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	view := NewQuoteView(rec)
	if !canceled {
		view.Notice = "nothing was being edited"
	}
	responses.EncodeWriteJSON(w, http.StatusOK, view)
}

func (app *App) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if _, err = rec.State.Delete(index); err != nil {
		writeQuoteError(w, err)
		return
	}
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, NewQuoteView(rec))
}

func (app *App) handleClearItems(w http.ResponseWriter, r *http.Request) {
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	cleared := rec.State.Clear()
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	view := NewQuoteView(rec)
	if !cleared {
		view.Notice = "quote is already empty"
	}
	responses.EncodeWriteJSON(w, http.StatusOK, view)
}

func (app *App) handleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	sessionID, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	now := time.Now()
	if !app.Throttle.Allow(GenThrottleGroup, sessionID, now) {
		responses.WriteSimpleErrorJSON(w, http.StatusTooManyRequests, "too many document requests. slow down")
		return
	}

	// the per-session mutex makes generation single-flight within a session:
	// a duplicate request waits its turn and lands on the cache check below.
	// reuse the cached document while the quote has not changed
	if rec.Doc != nil && rec.Doc.Revision == rec.State.Rev() {
		view := NewQuoteView(rec)
		view.Notice = "document is up to date"
		responses.EncodeWriteJSON(w, http.StatusOK, view)
		return
	}

	doc, err := app.Composer.Compose(rec.State.Snapshot(), now)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	rec.Doc = doc
	if err = app.save(r, sessionID, rec); err != nil {
		writeQuoteError(w, err)
		return
	}
	log.Printf("[INFO][Web] document %s (%d bytes) generated for %s", doc.ID, doc.Size(), requests.GetClientIP(r))
	responses.EncodeWriteJSON(w, http.StatusCreated, NewQuoteView(rec))
}

func (app *App) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	_, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if rec.Doc == nil || rec.Doc.Revision != rec.State.Rev() {
		responses.WriteSimpleErrorJSON(w, http.StatusNotFound, "no current document. generate one first")
		return
	}
	responses.WritePDFBytesWithFilename(w, rec.Doc.Filename, rec.Doc.Bytes)
}

func (app *App) handleShareLink(w http.ResponseWriter, r *http.Request) {
	_, rec, err := app.record(r)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	customer := rec.State.Customer()
	shareText := "Fiyat Teklifi: " + customer.Company + " - " + strconv.Itoa(rec.State.Len()) + " ürün"
	responses.EncodeWriteJSON(w, http.StatusOK, map[string]string{
		"url": "https://wa.me/?text=" + url.QueryEscape(shareText),
	})
}
