package support

import "github.com/campushub/support-service/core"

// Operation identifies a guarded action on supports.
type Operation int

const (
	OpCreate Operation = iota
	OpRead
	OpList
	OpListOwner
	OpListPending
	OpUpdate
	OpSubmit
	OpValidate
	OpReject
	OpDelete
)

// Can decides whether prin may perform op. For record-bound operations
// (update, submit, delete) sup must be the target record; for OpListOwner
// sup.OwnerID must carry the path owner id. Pure function; no I/O.
func Can(op Operation, prin core.Principal, sup Support) bool {
	switch op {
	case OpCreate:
		return prin.IsTeacher()
	case OpRead, OpList:
		return true // any authenticated principal
	case OpListOwner:
		return prin.ID == sup.OwnerID || prin.IsAdmin()
	case OpListPending:
		return prin.IsDean() || prin.IsAdmin()
	case OpUpdate:
		return (prin.ID == sup.OwnerID && prin.IsTeacher()) || prin.IsAdmin()
	case OpSubmit:
		return prin.ID == sup.OwnerID && prin.IsTeacher()
	case OpValidate, OpReject:
		return prin.IsDean() || prin.IsAdmin()
	case OpDelete:
		return prin.ID == sup.OwnerID || prin.IsAdmin()
	}
	return false
}
