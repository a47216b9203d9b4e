package models

// Document is the metadata of a file attached to a transaction.
type Document struct {
	DocumentId        string `json:"document_id"`
	FileName          string `json:"file_name"`
	FileType          string `json:"file_type,omitempty"`
	FileSize          int64  `json:"file_size,omitempty"`
	FileSizeFormatted string `json:"file_size_formatted,omitempty"`
	AttachmentOrder   int    `json:"attachment_order,omitempty"`
	CanSendInEmail    bool   `json:"can_send_in_email,omitempty"`
	CanShowInPortal   bool   `json:"can_show_in_portal,omitempty"`
	Source            string `json:"source,omitempty"`
	UploadedBy        string `json:"uploaded_by,omitempty"`
	UploadedOn        string `json:"uploaded_on,omitempty"`
}
