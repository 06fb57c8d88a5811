package client

import (
	"context"
	"net/http"
)

const exportArticlesPath = "/wx/tools/export/articles"

// ExportScopeSelected exports only the ids listed in ExportParams.IDs; any
// other scope exports everything in the page window.
const ExportScopeSelected = "selected"

// ExportParams are the dashboard's export dialog values.
type ExportParams struct {
	MpID      string
	Scope     string
	IDs       []string
	Limit     int
	PageCount int
	Formats   []string
}

// ExportRequest is the wire payload of the export endpoint.
type ExportRequest struct {
	MpID         string   `json:"mp_id"`
	DocID        []string `json:"doc_id"`
	PageSize     int      `json:"page_size"`
	PageCount    int      `json:"page_count"`
	AddTitle     bool     `json:"add_title"`
	RemoveImages bool     `json:"remove_images"`
	RemoveLinks  bool     `json:"remove_links"`
	ExportMD     bool     `json:"export_md"`
	ExportDOCX   bool     `json:"export_docx"`
	ExportJSON   bool     `json:"export_json"`
	ExportCSV    bool     `json:"export_csv"`
	ExportPDF    bool     `json:"export_pdf"`
	ZipFilename  string   `json:"zip_filename"`
}

// ExportResult is the decoded export response; Data holds the archive path.
type ExportResult struct {
	Code int    `json:"code"`
	Data string `json:"data"`
}

// NewExportRequest shapes params into the wire payload. A zero page size
// becomes 10 and a zero page count 1; other values pass through. Format flags
// are set when the format list contains the exact lower-case name.
func NewExportRequest(params ExportParams) ExportRequest {
	req := ExportRequest{
		MpID:         params.MpID,
		DocID:        []string{},
		PageSize:     params.Limit,
		PageCount:    params.PageCount,
		AddTitle:     true,
		RemoveImages: true,
		RemoveLinks:  false,
	}
	if params.Scope == ExportScopeSelected && len(params.IDs) > 0 {
		req.DocID = append([]string(nil), params.IDs...)
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}
	if req.PageCount == 0 {
		req.PageCount = 1
	}

	formats := make(map[string]bool, len(params.Formats))
	for _, format := range params.Formats {
		formats[format] = true
	}
	req.ExportMD = formats["md"]
	req.ExportDOCX = formats["docx"]
	req.ExportJSON = formats["json"]
	req.ExportCSV = formats["csv"]
	req.ExportPDF = formats["pdf"]
	return req
}

// ExportArticles requests an export archive.
func (c *Client) ExportArticles(ctx context.Context, params ExportParams) (*Response, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	headers.Set("X-Requested-With", "XMLHttpRequest")
	return c.do(ctx, http.MethodPost, exportArticlesPath, nil, NewExportRequest(params), headers)
}
