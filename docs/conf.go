package docs

// Conf - static sender block and composition options. These are configuration
// constants, not user input.
type Conf struct {
	CompanyLegalName string `json:"company_legal_name"` // document header line
	SenderName       string `json:"sender_name"`
	SenderTitle      string `json:"sender_title"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`

	QuotePrefix string `json:"quote_prefix"` // quote number prefix, e.g. "BLD"
	AsciiFold   bool   `json:"ascii_fold"`   // fold non-Latin characters to ASCII instead of native glyphs
	LogoDir     string `json:"logo_dir"`     // where watermark logo candidates are looked up; "" = working dir
}
