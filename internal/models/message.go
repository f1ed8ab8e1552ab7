package models

import "time"

// ChatMessage is one entry in the team chat side-channel.
type ChatMessage struct {
	ID        string    `bson:"id" json:"id"`
	Sender    string    `bson:"sender" json:"sender"`
	Role      string    `bson:"role" json:"role"`
	Text      string    `bson:"text" json:"text"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
