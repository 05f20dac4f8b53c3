package extract

// Method identifies which extraction strategy produced a result.
type Method string

const (
	MethodStructuredText Method = "structured-text"
	MethodGeneralText    Method = "general-text"
	MethodOCR            Method = "ocr"
	MethodOCRRaw         Method = "ocr-no-preprocess"
	MethodNone           Method = "none"
)

// Result is the outcome of one extraction attempt over a PDF upload.
// Success is true iff Text is non-empty and cleared the winning method's
// minimum-length gate.
type Result struct {
	Text      string `json:"text"`
	Method    Method `json:"method"`
	Success   bool   `json:"success"`
	PageCount int    `json:"page_count"`
}
