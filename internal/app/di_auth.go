package app

import (
	authService "github.com/allisson/catalog/internal/auth/service"
)

// AdminTokenService returns the admin token service used by the write guard
// and the create-admin-token command.
func (c *Container) AdminTokenService() authService.AdminTokenService {
	c.adminTokenServiceInit.Do(func() {
		c.adminTokenService = authService.NewAdminTokenService()
	})
	return c.adminTokenService
}
