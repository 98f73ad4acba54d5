package state

import (
	"github.com/shopspring/decimal"

	"github.com/skinsentry/skinsentry/internal/domain"
)

type documentModel struct {
	Alerts []alertModel        `json:"alerts"`
	Daily  []subscriptionModel `json:"daily"`
}

type alertModel struct {
	User        int64           `json:"user"`
	Destination int64           `json:"channel"`
	Item        string          `json:"item"`
	Source      string          `json:"source"`
	Direction   string          `json:"direction"`
	TargetPrice decimal.Decimal `json:"price"`
}

type subscriptionModel struct {
	User        int64   `json:"user"`
	Destination int64   `json:"channel"`
	Item        string  `json:"item"`
	Source      string  `json:"source"`
	LastSent    *string `json:"last_sent"`
}

func mapDocumentToDomain(model documentModel) domain.Document {
	doc := domain.Document{
		Alerts: make([]domain.Alert, 0, len(model.Alerts)),
		Daily:  make([]domain.DailySubscription, 0, len(model.Daily)),
	}
	for _, a := range model.Alerts {
		doc.Alerts = append(doc.Alerts, domain.Alert{
			User:        a.User,
			Destination: a.Destination,
			Item:        a.Item,
			Source:      domain.Source(a.Source),
			Direction:   domain.Direction(a.Direction),
			TargetPrice: a.TargetPrice,
		})
	}
	for _, s := range model.Daily {
		lastSent := ""
		if s.LastSent != nil {
			lastSent = *s.LastSent
		}
		doc.Daily = append(doc.Daily, domain.DailySubscription{
			User:        s.User,
			Destination: s.Destination,
			Item:        s.Item,
			Source:      domain.Source(s.Source),
			LastSent:    lastSent,
		})
	}
	return doc
}

func mapDocumentToModel(doc domain.Document) documentModel {
	model := documentModel{
		Alerts: make([]alertModel, 0, len(doc.Alerts)),
		Daily:  make([]subscriptionModel, 0, len(doc.Daily)),
	}
	for _, a := range doc.Alerts {
		model.Alerts = append(model.Alerts, alertModel{
			User:        a.User,
			Destination: a.Destination,
			Item:        a.Item,
			Source:      string(a.Source),
			Direction:   string(a.Direction),
			TargetPrice: a.TargetPrice,
		})
	}
	for _, s := range doc.Daily {
		// A never-sent digest is persisted as null, not "".
		var lastSent *string
		if s.LastSent != "" {
			value := s.LastSent
			lastSent = &value
		}
		model.Daily = append(model.Daily, subscriptionModel{
			User:        s.User,
			Destination: s.Destination,
			Item:        s.Item,
			Source:      string(s.Source),
			LastSent:    lastSent,
		})
	}
	return model
}
