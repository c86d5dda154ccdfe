// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package classify

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Split errors.
var (
	// ErrEmptyDataset indicates the split was asked to partition no rows.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrSingleClass indicates the labels contain only one class, so no
	// stratified partition exists.
	ErrSingleClass = errors.New("labels contain a single class")
)

// Split is a stratified three-way partition of a feature matrix.
type Split struct {
	XTrain [][]float64
	YTrain []int

	XValidation [][]float64
	YValidation []int

	XTest [][]float64
	YTest []int

	Seed int64
}

// StratifiedSplit partitions the samples into train, validation, and test
// sets preserving the class balance of y in each part. testSize and
// validationSize are fractions of the full set; the test rows are taken
// first, then the validation fraction is applied relative to the remainder,
// matching a test split followed by a validation split of what is left.
//
// Rows are shuffled per class with the seeded RNG, so a fixed seed yields
// the same partition on every run.
func StratifiedSplit(x [][]float64, y []int, testSize, validationSize float64, seed int64) (*Split, error) {
	if len(x) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and labels (%d) differ", len(x), len(y))
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, fmt.Errorf("test size must be in (0, 1) (got %g)", testSize)
	}
	if validationSize <= 0 || validationSize+testSize >= 1 {
		return nil, fmt.Errorf("validation size must be in (0, 1-test) (got %g)", validationSize)
	}

	var negatives, positives []int
	for i, label := range y {
		switch label {
		case 0:
			negatives = append(negatives, i)
		case 1:
			positives = append(positives, i)
		default:
			return nil, fmt.Errorf("label %d at row %d is not binary", label, i)
		}
	}
	if len(negatives) == 0 || len(positives) == 0 {
		return nil, ErrSingleClass
	}

	// Validation fraction of the rows left after removing the test set.
	validationRel := validationSize / (1 - testSize)

	rng := rand.New(rand.NewSource(seed))
	s := &Split{Seed: seed}
	for _, class := range [][]int{negatives, positives} {
		indices := append([]int(nil), class...)
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nTest := int(math.Round(testSize * float64(len(indices))))
		rest := len(indices) - nTest
		nValidation := int(math.Round(validationRel * float64(rest)))

		test := indices[:nTest]
		validation := indices[nTest : nTest+nValidation]
		train := indices[nTest+nValidation:]

		s.appendRows(x, y, test, validation, train)
	}

	if len(s.XTrain) == 0 || len(s.XValidation) == 0 || len(s.XTest) == 0 {
		return nil, fmt.Errorf("dataset too small to stratify into three parts (%d rows)", len(x))
	}
	return s, nil
}

func (s *Split) appendRows(x [][]float64, y []int, test, validation, train []int) {
	for _, i := range test {
		s.XTest = append(s.XTest, x[i])
		s.YTest = append(s.YTest, y[i])
	}
	for _, i := range validation {
		s.XValidation = append(s.XValidation, x[i])
		s.YValidation = append(s.YValidation, y[i])
	}
	for _, i := range train {
		s.XTrain = append(s.XTrain, x[i])
		s.YTrain = append(s.YTrain, y[i])
	}
}

// positiveShare returns the fraction of positive labels, 0 for an empty set.
func positiveShare(y []int) float64 {
	if len(y) == 0 {
		return 0
	}
	pos := 0
	for _, label := range y {
		pos += label
	}
	return float64(pos) / float64(len(y))
}
