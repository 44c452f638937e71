package handler

import (
	"bytes"
	"encoding/json"

	"mergington/internal/activity/model"
)

// activityView is the wire shape of one activity record.
type activityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// catalogResponse marshals as a JSON object keyed by activity name. A plain
// map would lose the catalog's insertion order, so the object is built by
// hand from the ordered slice.
type catalogResponse []model.Activity

func newCatalogResponse(activities []model.Activity) catalogResponse {
	return catalogResponse(activities)
}

func (c catalogResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		value, err := json.Marshal(activityView{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
