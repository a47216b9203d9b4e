package models

// CustomField is one entry of the "custom_fields" array. On input either
// CustomFieldId or ApiName identifies the field; Value is free-form.
type CustomField struct {
	CustomFieldId  string `json:"customfield_id,omitempty"`
	Index          int    `json:"index,omitempty"`
	Label          string `json:"label,omitempty"`
	ApiName        string `json:"api_name,omitempty"`
	Value          any    `json:"value"`
	ValueFormatted string `json:"value_formatted,omitempty"`
	DataType       string `json:"data_type,omitempty"`
	Placeholder    string `json:"placeholder,omitempty"`
	ShowOnPdf      bool   `json:"show_on_pdf,omitempty"`
	ShowInAllPdf   bool   `json:"show_in_all_pdf,omitempty"`
	IsActive       bool   `json:"is_active,omitempty"`
}

// FindCustomField looks a field up by api name ("cf_foo") or label.
func FindCustomField(fields []CustomField, key string) (CustomField, bool) {
	for _, f := range fields {
		if f.ApiName == key || f.Label == key || (f.Placeholder != "" && f.Placeholder == key) {
			return f, true
		}
	}
	return CustomField{}, false
}
