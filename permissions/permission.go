package permissions

import (
	_ "embed"
	"encoding/json"
	"fleetdesk/shared/constant"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var staffRoles = []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleManager, constant.RoleMechanic}

// Permission lists the staff roles allowed on one route pattern. An empty
// list lets any authenticated role through.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FindPermissions looks up a chi route pattern such as /v1/bookings/{id}.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		return r.index[routeKey(method, path)]
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, ok := permissions.index[key]; ok {
			log.Warn().Str("endpoint", key).Msg("Duplicate permission entry, keeping the first one")

			continue
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(staffRoles, role) {
				log.Warn().Str("endpoint", key).Str("role", role).Msg("Permission entry names an unknown role")
			}
		}

		permissions.index[key] = endpoint
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
