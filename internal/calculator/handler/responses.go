package handler

import (
	"net/http"

	"medcalc/internal/calculator"
)

// CatalogResponse is the body of GET /calculators.
type CatalogResponse struct {
	Calculators []calculator.Summary `json:"calculators"`
	Count       int                  `json:"count"`
}

// BatchResponse is the body of POST /run/batch.
type BatchResponse struct {
	Results []calculator.Envelope `json:"results"`
}

// envelopeStatus maps an envelope to its HTTP status.
func envelopeStatus(env calculator.Envelope) int {
	switch env.Error {
	case calculator.ErrUnknownCalculator:
		return http.StatusNotFound
	case calculator.ErrInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}
