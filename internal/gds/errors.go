package gds

import (
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/flightgds/internal/domain"
)

// Vendor code for a fare segment that sold out between pricing and booking.
const codeSegmentSoldOut int64 = 34651

const segmentSoldOutMessage = "one or more selected flight segments are no longer available, search again and choose a fresh offer"

type vendorError struct {
	Status int64  `json:"status"`
	Code   int64  `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type vendorErrorResponse struct {
	Errors []vendorError `json:"errors"`
}

// translateError maps a vendor error body to the internal taxonomy. The
// first entry of the vendor error list wins: detail over title for the
// message, code and status carried as metadata. Bodies that do not parse as
// a vendor error list pass through as a generic upstream failure with the
// HTTP status.
func translateError(httpStatus int, body []byte) error {
	var resp vendorErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Errors) == 0 {
		return domain.NewUpstreamError(fmt.Sprintf("gds request failed with status %d", httpStatus), httpStatus, 0)
	}

	ve := resp.Errors[0]
	if ve.Code == codeSegmentSoldOut {
		return domain.NewUpstreamError(segmentSoldOutMessage, 400, ve.Code)
	}

	msg := ve.Detail
	if msg == "" {
		msg = ve.Title
	}
	status := int(ve.Status)
	if status == 0 {
		status = httpStatus
	}
	return domain.NewUpstreamError(msg, status, ve.Code)
}
