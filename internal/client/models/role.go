package models

import "strings"

// DefaultAdminEmail is the allow-list used when none is configured.
const DefaultAdminEmail = "admin@casedesk.app"

// RoleResolver maps emails on the admin allow-list to RoleAdmin.
type RoleResolver struct {
	admins map[string]struct{}
}

// NewRoleResolver builds a resolver; entries are trimmed and compared
// case-insensitively, blanks are ignored.
func NewRoleResolver(adminEmails []string) *RoleResolver {
	r := &RoleResolver{admins: make(map[string]struct{}, len(adminEmails))}
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			r.admins[e] = struct{}{}
		}
	}
	return r
}

// ParseAdminEmails splits a comma separated allow-list.
func ParseAdminEmails(csv string) []string {
	var out []string
	for _, e := range strings.Split(csv, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// RoleFor derives the role of email from the allow-list alone.
func (r *RoleResolver) RoleFor(email string) string {
	if r != nil {
		if _, ok := r.admins[normalizeEmail(email)]; ok {
			return RoleAdmin
		}
	}
	return RoleUser
}

// Apply fills u.Role when it is empty. A role already present (from the
// remote or a previous Apply) is kept, so applying twice changes nothing.
func (r *RoleResolver) Apply(u *User) {
	if u == nil || u.Role != "" {
		return
	}
	u.Role = r.RoleFor(u.Email)
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
