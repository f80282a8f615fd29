package directorysvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/campushub/support-service/core"
)

// httpService resolves profiles against the campushub user service over
// HTTP. Pure queries; no mutation.
type httpService struct {
	baseURL string
	client  *http.Client
	logger  core.Logger
}

var _ core.DirectoryService = (*httpService)(nil)

func NewHTTPService(conf *core.Config, logger core.Logger) *httpService {
	return &httpService{
		baseURL: conf.Directory.URL,
		client:  &http.Client{Timeout: conf.Directory.Timeout},
		logger:  logger,
	}
}

func (svc *httpService) GetUser(ctx context.Context, id int) (core.Profile, error) {
	u := fmt.Sprintf("%s/api/users/%d", svc.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return core.Profile{}, errors.Wrap(err, "building directory request")
	}

	res, err := svc.client.Do(req)
	if err != nil {
		return core.Profile{}, errors.Wrap(err, "calling directory")
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return core.Profile{}, core.ErrProfileNotFound
	case res.StatusCode != http.StatusOK:
		return core.Profile{}, errors.Errorf("directory returned %d for user %d", res.StatusCode, id)
	}

	var profile core.Profile
	if err = json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return core.Profile{}, errors.Wrap(err, "decoding directory profile")
	}
	return profile, nil
}

func (svc *httpService) GetDepartmentMembers(ctx context.Context, department, callerToken string) ([]core.Profile, error) {
	u := fmt.Sprintf("%s/api/departments/%s/members", svc.baseURL, url.PathEscape(department))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building directory request")
	}
	if callerToken != "" {
		req.Header.Set("Authorization", "Bearer "+callerToken)
	}

	res, err := svc.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling directory")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("directory returned %d for department %s", res.StatusCode, department)
	}

	var profiles []core.Profile
	if err = json.NewDecoder(res.Body).Decode(&profiles); err != nil {
		return nil, errors.Wrap(err, "decoding directory profiles")
	}
	return profiles, nil
}
