package models

const (
	SettingEventName = "event_name"
	SettingLogoURL   = "logo_url"

	DefaultEventName = "Live Contest"
)

type SettingsResponse struct {
	EventName string `json:"eventName"`
	LogoURL   string `json:"logoUrl"`
}

type UpdateSettingsRequest struct {
	EventName string `json:"eventName"`
	LogoURL   string `json:"logoUrl"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}
