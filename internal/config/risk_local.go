//go:build !gcloud

package config

func (c *RiskConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	return validateServiceURL(c.ServiceURL)
}
