package support

import (
	"context"

	"github.com/campushub/support-service/core"
)

// resolveRecipients computes the notification recipients for the given
// post-mutation record snapshot by consulting the directory. The returned
// profiles are those actually resolved (empty on the id-only fallback).
//
// Policy per transition:
//   - Draft (create):      owner only
//   - Submitted, Rejected: department Deans first, owner appended if absent
//   - Validated:           every member of the owner's department
//
// Any directory failure degrades to the owner-only fallback; it is never
// surfaced to the caller.
func (svc *Service) resolveRecipients(ctx context.Context, sup Support, prin core.Principal) ([]int, []core.Profile) {
	fallback := []int{sup.OwnerID}

	if sup.Status == StatusDraft {
		return fallback, nil
	}

	dirCtx, cancel := context.WithTimeout(ctx, svc.dirTimeout)
	defer cancel()

	owner, err := svc.directory.GetUser(dirCtx, sup.OwnerID)
	if err != nil {
		svc.logger.Warn("directory unavailable, falling back to owner-only recipients", err)
		return fallback, nil
	}

	memCtx, cancel := context.WithTimeout(ctx, svc.dirTimeout)
	defer cancel()

	members, err := svc.directory.GetDepartmentMembers(memCtx, owner.Department, prin.Token)
	if err != nil {
		svc.logger.Warn("directory unavailable, falling back to owner-only recipients", err)
		return fallback, nil
	}

	var profiles []core.Profile
	switch sup.Status {
	case StatusValidated:
		profiles = members
	default: // StatusSubmitted, StatusRejected
		for _, m := range members {
			if m.Role == core.RoleDean {
				profiles = append(profiles, m)
			}
		}
	}

	ids := make([]int, 0, len(profiles)+1)
	seen := make(map[int]bool, len(profiles)+1)
	for _, p := range profiles {
		if !seen[p.ID] {
			seen[p.ID] = true
			ids = append(ids, p.ID)
		}
	}
	if !seen[sup.OwnerID] {
		ids = append(ids, sup.OwnerID)
		profiles = append(profiles, owner)
	}
	return ids, profiles
}
