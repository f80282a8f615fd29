package support

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushub/support-service/core"
)

func TestCan(t *testing.T) {
	teacher := core.Principal{ID: 1, Username: "mary", Roles: []string{core.RoleTeacher}}
	otherTeacher := core.Principal{ID: 2, Username: "john", Roles: []string{core.RoleTeacher}}
	dean := core.Principal{ID: 9, Username: "dean", Roles: []string{core.RoleDean}}
	admin := core.Principal{ID: 10, Username: "root", Roles: []string{core.RoleAdmin}}
	student := core.Principal{ID: 3, Username: "kid", Roles: []string{core.RoleStudent}}

	owned := Support{ID: "s1", OwnerID: 1}

	tests := []struct {
		name string
		op   Operation
		prin core.Principal
		sup  Support
		want bool
	}{
		{name: "create: teacher", op: OpCreate, prin: teacher, want: true},
		{name: "create: dean", op: OpCreate, prin: dean, want: false},
		{name: "create: student", op: OpCreate, prin: student, want: false},

		{name: "read: anyone", op: OpRead, prin: student, want: true},
		{name: "list: anyone", op: OpList, prin: dean, want: true},

		{name: "list owner: self", op: OpListOwner, prin: teacher, sup: Support{OwnerID: 1}, want: true},
		{name: "list owner: other", op: OpListOwner, prin: otherTeacher, sup: Support{OwnerID: 1}, want: false},
		{name: "list owner: admin", op: OpListOwner, prin: admin, sup: Support{OwnerID: 1}, want: true},

		{name: "list pending: dean", op: OpListPending, prin: dean, want: true},
		{name: "list pending: admin", op: OpListPending, prin: admin, want: true},
		{name: "list pending: teacher", op: OpListPending, prin: teacher, want: false},

		{name: "update: owner teacher", op: OpUpdate, prin: teacher, sup: owned, want: true},
		{name: "update: other teacher", op: OpUpdate, prin: otherTeacher, sup: owned, want: false},
		{name: "update: admin", op: OpUpdate, prin: admin, sup: owned, want: true},

		{name: "submit: owner teacher", op: OpSubmit, prin: teacher, sup: owned, want: true},
		{name: "submit: other teacher", op: OpSubmit, prin: otherTeacher, sup: owned, want: false},
		{name: "submit: admin non-owner", op: OpSubmit, prin: admin, sup: owned, want: false},
		{name: "submit: owner without teacher role", op: OpSubmit, prin: core.Principal{ID: 1, Roles: []string{core.RoleStudent}}, sup: owned, want: false},

		{name: "validate: dean", op: OpValidate, prin: dean, sup: owned, want: true},
		{name: "validate: admin", op: OpValidate, prin: admin, sup: owned, want: true},
		{name: "validate: teacher", op: OpValidate, prin: teacher, sup: owned, want: false},
		{name: "reject: dean", op: OpReject, prin: dean, sup: owned, want: true},
		{name: "reject: student", op: OpReject, prin: student, sup: owned, want: false},

		{name: "delete: owner", op: OpDelete, prin: teacher, sup: owned, want: true},
		{name: "delete: admin", op: OpDelete, prin: admin, sup: owned, want: true},
		{name: "delete: other", op: OpDelete, prin: otherTeacher, sup: owned, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.op, tt.prin, tt.sup))
		})
	}
}
