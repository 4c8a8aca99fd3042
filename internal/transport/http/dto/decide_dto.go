package dto

type DecideRequest struct {
	TargetID int64  `json:"target_id"`
	Status   string `json:"status"`
}

type DecideResponse struct {
	OK           bool                  `json:"ok"`
	Match        MatchResponse         `json:"match"`
	Conversation *ConversationResponse `json:"conversation,omitempty"`
}
