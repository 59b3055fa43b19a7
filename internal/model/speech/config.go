package speech

// VolcengineConfig 火山引擎 TTS 配置
type VolcengineConfig struct {
	AppID       string  `json:"appId"`       // 火山引擎 APP ID
	AccessToken string  `json:"accessToken"` // 火山引擎 Access Token
	Endpoint    string  `json:"endpoint"`    // WebSocket 地址，为空时使用官方地址
	Voice       string  `json:"voice"`
	Speed       float32 `json:"speed"`
	Volume      float32 `json:"volume"`
}

// GoogleConfig Google Cloud Text-to-Speech 配置
type GoogleConfig struct {
	AccessToken string `json:"accessToken"`
	ProjectID   string `json:"projectId"`
	Endpoint    string `json:"endpoint"`
	// Voice 为空时由服务端按语言挑选默认声音
	Voice string `json:"voice"`
}
