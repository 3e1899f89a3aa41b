//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

func (c *RiskConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}

	var errs []error

	if err := validateServiceURL(c.ServiceURL); err != nil {
		errs = append(errs, err)
	}

	// Without a queue the events go straight to the service over HTTP.
	if c.UsesCloudTasks() {
		if c.GCloudProjectID == "" {
			errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required"))
		}
		if c.GCloudLocationID == "" {
			errs = append(errs, errors.New("GCLOUD_LOCATION_ID is required"))
		}
		if c.GCloudQueueID == "" {
			errs = append(errs, errors.New("GCLOUD_QUEUE_ID is required"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("risk queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
