package dto

import "fmt"

// DocumentUpload is one uploaded document handed to extraction.
type DocumentUpload struct {
	Type     DocumentType
	Filename string
	Data     []byte
}

// Validate checks the caller's side of the contract: a document must be
// present and arrive in the container format its type expects.
func (u *DocumentUpload) Validate() error {
	if len(u.Data) == 0 {
		return fmt.Errorf("document %q is empty", u.Filename)
	}
	return ValidateContainer(u.Type, u.Filename)
}
