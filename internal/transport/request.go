package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/logging"
)

// decodeResponse reads and decodes a JSON response body.
func decodeResponse(platform string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.APIError{
			Platform: platform,
			Message:  "failed to read response body",
			Err:      err,
		}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &errors.AuthenticationError{
			Platform: platform,
			Method:   "api_key",
			Message:  string(body),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Platform:   platform,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", platform+" response", err)
	}

	return nil
}
