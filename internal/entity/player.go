package entity

type Player struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Birds  []*Bird `json:"birds"`
	IsHost bool    `json:"isHost"`
}
