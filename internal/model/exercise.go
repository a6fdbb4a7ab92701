package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the stored date format. Dates kept in this form sort
// lexically in chronological order, which the log range query relies on.
const DateLayout = "2006-01-02"

// humanDateLayout matches JavaScript's Date.toDateString, e.g. "Mon May 01 2023".
const humanDateLayout = "Mon Jan 02 2006"

// Exercise is one logged exercise entry. It references its owner by the
// user's hex ObjectID and snapshots the username at creation time; the
// snapshot is never refreshed afterwards. The entry's own ID is never
// exposed in API responses.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID      string             `bson:"userId" json:"userId"`
	Username    string             `bson:"username" json:"username"`
	Description string             `bson:"description" json:"description"`
	Duration    int                `bson:"duration" json:"duration"`
	Date        string             `bson:"date" json:"date"`
}

// HumanDate renders a stored YYYY-MM-DD date in long form ("Mon May 01 2023").
// Unparseable input is returned unchanged.
func HumanDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(humanDateLayout)
}
