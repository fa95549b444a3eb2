package notification

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
