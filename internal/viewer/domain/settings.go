package domain

// WidgetSettings are the switches the embedded page view is created with.
type WidgetSettings struct {
	JavaScriptEnabled                bool `json:"javascript_enabled" mapstructure:"javascript_enabled"`
	DOMStorageEnabled                bool `json:"dom_storage_enabled" mapstructure:"dom_storage_enabled"`
	UseWideViewPort                  bool `json:"use_wide_viewport" mapstructure:"use_wide_viewport"`
	LoadWithOverviewMode             bool `json:"load_with_overview_mode" mapstructure:"load_with_overview_mode"`
	AllowFileAccess                  bool `json:"allow_file_access" mapstructure:"allow_file_access"`
	MediaPlaybackRequiresUserGesture bool `json:"media_playback_requires_user_gesture" mapstructure:"media_playback_requires_user_gesture"`
}

func DefaultWidgetSettings() WidgetSettings {
	return WidgetSettings{
		JavaScriptEnabled:                true,
		DOMStorageEnabled:                true,
		UseWideViewPort:                  true,
		LoadWithOverviewMode:             true,
		AllowFileAccess:                  true,
		MediaPlaybackRequiresUserGesture: false,
	}
}
