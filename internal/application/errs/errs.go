package errs

import "fmt"

// FetchError covers an unreachable scrape target or a non-success response.
type FetchError struct {
	URL string
	Err error
}

func (t FetchError) Error() string {
	return fmt.Sprintf("error fetching %v: %v", t.URL, t.Err)
}

func (t FetchError) Unwrap() error {
	return t.Err
}

// ExtractionRefused carries the model's refusal text verbatim.
type ExtractionRefused struct {
	Reason string
}

func (t ExtractionRefused) Error() string {
	return fmt.Sprintf("model refused extraction: %v", t.Reason)
}

type ValidationError struct {
	Err error
}

func (t ValidationError) Error() string {
	return fmt.Sprintf("model output failed validation: %v", t.Err)
}

func (t ValidationError) Unwrap() error {
	return t.Err
}

type NotFound struct {
	Resource string
	Key      string
}

func (t NotFound) Error() string {
	return fmt.Sprintf("%v not found: %v", t.Resource, t.Key)
}

type DuplicateSubdomain struct {
	Subdomain string
}

func (t DuplicateSubdomain) Error() string {
	return fmt.Sprintf("subdomain is already taken: %v", t.Subdomain)
}

type PersistenceError struct {
	Err error
}

func (t PersistenceError) Error() string {
	return fmt.Sprintf("storage error: %v", t.Err)
}

func (t PersistenceError) Unwrap() error {
	return t.Err
}

// ConfigurationError is fatal and raised before any network call.
type ConfigurationError struct {
	Missing []string
}

func (t ConfigurationError) Error() string {
	return fmt.Sprintf("deployment environment is not configured, missing: %v", t.Missing)
}

type DeploymentError struct {
	Err error
	// OrphanedRepoURL is set when the repository was created or updated but
	// its URL could not be written back onto the site record.
	OrphanedRepoURL string
}

func (t DeploymentError) Error() string {
	if t.OrphanedRepoURL != "" {
		return fmt.Sprintf("deployment error (repository %v is not linked to the site): %v", t.OrphanedRepoURL, t.Err)
	}
	return fmt.Sprintf("deployment error: %v", t.Err)
}

func (t DeploymentError) Unwrap() error {
	return t.Err
}
