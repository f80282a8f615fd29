package tests

import (
	"io/ioutil"
	"log"
	"os"
	"testing"
	"time"

	"github.com/campushub/support-service/apps/api/echo"
	"github.com/campushub/support-service/core"
	"github.com/campushub/support-service/core/support"
	"github.com/campushub/support-service/services/directory"
	"github.com/campushub/support-service/services/email"
	"github.com/campushub/support-service/services/logger"
	"github.com/campushub/support-service/services/notification"
	"github.com/campushub/support-service/storage/database/dummy"
)

var (
	app      echoapi.Server
	supRepo  support.Repository
	notifier *notifsvc.MockService
	dirSvc   *directorysvc.MockService

	teacher      = core.Principal{ID: 1, Username: "mary", Roles: []string{core.RoleTeacher}}
	otherTeacher = core.Principal{ID: 7, Username: "john", Roles: []string{core.RoleTeacher}}
	dean         = core.Principal{ID: 9, Username: "dean", Roles: []string{core.RoleDean}}
	admin        = core.Principal{ID: 10, Username: "root", Roles: []string{core.RoleAdmin}}
	student      = core.Principal{ID: 3, Username: "kid", Roles: []string{core.RoleStudent}}
)

func TestMain(m *testing.M) {
	conf := &core.Config{
		TestMode:         true,
		AppName:          "CampusHub Support",
		SecretKey:        "secret",
		DefaultFromEmail: "noreply@localhost",
		Server: core.ServerConfig{
			Host:               "localhost",
			JWTExpirationDelta: 10 * time.Minute,
		},
		Directory: core.DirectoryConfig{Timeout: time.Second},
	}

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		log.Fatal(err)
	}
	supRepo = dummydb.NewSupportRepository(db)

	// set up services
	std := logsvc.NewStdLogger(log.New(ioutil.Discard, "", 0))
	dirSvc = directorysvc.NewMockService(
		core.Profile{ID: 1, Username: "mary", Email: "mary@cs.test", Department: "CS", Role: core.RoleTeacher},
		core.Profile{ID: 3, Username: "kid", Email: "kid@cs.test", Department: "CS", Role: core.RoleStudent},
		core.Profile{ID: 9, Username: "dean", Email: "dean@cs.test", Department: "CS", Role: core.RoleDean},
	)
	notifier = notifsvc.NewMockService()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	supSvc := support.NewService(conf, supRepo, dirSvc, notifier, mailSvc, std)

	// set up server
	app = echoapi.NewServer(
		"",  /* addr */
		nil, /* shutdown */
		conf,
		&echoapi.Deps{
			Logger:     std,
			SupportSvc: supSvc,
		},
	)

	os.Exit(m.Run())
}
