// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// ColumnProfile is the numeric summary of one column: count, mean, standard
// deviation, and the five-number spread
type ColumnProfile struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// CategoryCount is one categorical value and its occurrence count
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalProfile is the cardinality and value distribution of one
// categorical column, values ordered by count descending
type CategoricalProfile struct {
	Column      string          `json:"column"`
	Cardinality int             `json:"cardinality"`
	Values      []CategoryCount `json:"values"`
}

// LabelBalance is the class balance of the cancellation label
type LabelBalance struct {
	Canceled      int     `json:"canceled"`
	NotCanceled   int     `json:"not_canceled"`
	PositiveShare float64 `json:"positive_share"`
}

// FeatureCorrelation is the Pearson correlation of one numeric column with
// the cancellation label
type FeatureCorrelation struct {
	Column      string  `json:"column"`
	Correlation float64 `json:"correlation"`
}

// DatasetProfile is the full output of the dataset-profile suite
type DatasetProfile struct {
	Rows         int                  `json:"rows"`
	Numeric      []ColumnProfile      `json:"numeric"`
	Categorical  []CategoricalProfile `json:"categorical"`
	Labels       LabelBalance         `json:"labels"`
	Correlations []FeatureCorrelation `json:"correlations"`
}
