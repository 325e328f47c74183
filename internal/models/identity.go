package models

// Identity is an external-platform user as the command layer sees it:
// numeric id plus primary and display names.
type Identity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Summary is the aggregate view served by the stats endpoint.
type Summary struct {
	Leaders       int     `json:"leaders"`
	Deputies      int     `json:"deputies"`
	Warnings      int     `json:"warnings"`
	Reprimands    int     `json:"reprimands"`
	News          int     `json:"news"`
	TotalCommands int     `json:"total_commands"`
	BotStartTime  *string `json:"bot_start_time"`
}
