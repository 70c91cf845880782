package domain

import "time"

// Intent identifies which dispatcher branch produced an answer.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentStockCheck   Intent = "stock_check"
	IntentCategory     Intent = "category"
	IntentPrice        Intent = "price"
	IntentSimilar      Intent = "similar"
	IntentUnrecognized Intent = "unrecognized"
)

// Answer is the response to a free-text shopping question.
type Answer struct {
	Answer   string    `json:"answer"`
	Yes      bool      `json:"yes,omitempty"`
	No       bool      `json:"no,omitempty"`
	Product  *Product  `json:"product,omitempty"`
	Products []Product `json:"products,omitzero"`

	// Intent is the branch that produced the answer. It is not part of the
	// wire format.
	Intent Intent `json:"-"`
}

// SimilarityAnswer is the response to a "show me items like X" request.
type SimilarityAnswer struct {
	Answer          string    `json:"answer"`
	Yes             bool      `json:"yes,omitempty"`
	No              bool      `json:"no,omitempty"`
	TargetProduct   *Product  `json:"target_product,omitempty"`
	SimilarProducts []Product `json:"similar_products,omitzero"`
}

// TrendingQuery is a query string with its occurrence count.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// Notification is a feed card announcing a catalog product.
type Notification struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationTypeProduct marks notifications generated from catalog products.
const NotificationTypeProduct = "product"
