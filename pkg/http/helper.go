package http

import (
	"net/http"
	"strconv"

	"crms/pkg/config"
	apperrors "crms/pkg/errors"
)

// ExtractLimitOffset parses optional pagination parameters. A missing limit
// means "no pagination requested" and is reported via the bool return.
func ExtractLimitOffset(r *http.Request) (int, int64, bool, error) {
	query := r.URL.Query()

	limitStr := query.Get("limit")
	offsetStr := query.Get("offset")
	if limitStr == "" && offsetStr == "" {
		return 0, 0, false, nil
	}

	limit := 0
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, false, apperrors.InvalidInput("invalid limit parameter: " + limitStr)
		}
		limit = v
	}

	var offset int64
	if offsetStr != "" {
		v, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			return 0, 0, false, apperrors.InvalidInput("invalid offset parameter: " + offsetStr)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, true, nil
}
