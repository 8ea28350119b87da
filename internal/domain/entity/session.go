package entity

import "time"

// Session is the per-user state owned by the delivery layer: the forwarded
// credential, the selected spreadsheet, the add-flow draft and the edit snapshot.
type Session struct {
	ID              string         `json:"id"`
	AccessToken     string         `json:"access_token"`
	SpreadsheetID   string         `json:"spreadsheet_id,omitempty"`
	SpreadsheetName string         `json:"spreadsheet_name,omitempty"`
	Draft           PatientRecord  `json:"draft"`
	EditSnapshot    *PatientRecord `json:"edit_snapshot,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Connection returns the handle used for table operations.
func (s *Session) Connection() Connection {
	return Connection{AccessToken: s.AccessToken, SpreadsheetID: s.SpreadsheetID}
}

// Connection pairs the opaque bearer credential with a spreadsheet handle.
type Connection struct {
	AccessToken   string
	SpreadsheetID string
}

// SpreadsheetFile is one entry of the file listing.
type SpreadsheetFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
