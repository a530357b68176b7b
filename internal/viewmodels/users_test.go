package viewmodels_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/store/migrations"
	"github.com/retailops/backoffice/internal/viewmodels"
	"github.com/retailops/backoffice/pkg/listing"
)

var _ = Describe("UserViewModel", func() {
	var (
		ctx    context.Context
		db     *sql.DB
		s      *store.Store
		vm     *viewmodels.UserViewModel
		engine *listing.Engine
		state  *listing.SessionState
	)

	createUser := func(name, surname, username string, roles []string) *models.User {
		user := &models.User{
			Name:     name,
			Surname:  surname,
			Username: username,
			Password: "hash",
			Roles:    roles,
			Timezone: "UTC",
		}
		Expect(s.Users().Create(ctx, user)).To(Succeed())
		return user
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		s = store.NewStore(db)
		vm = viewmodels.NewUserViewModel()
		engine = listing.NewEngine(db)
		state = listing.NewSessionState(listing.NewMemoryStateStore(), vm.SessionBucket())

		createUser("Jane", "Doe", "jane@example.com", []string{models.RoleAdmin})
		createUser("Bob", "Smith", "bob@example.com", nil)
		deleted := createUser("Karl", "Prior", "karl@example.com", nil)
		_, err = db.ExecContext(ctx, `UPDATE users SET soft_deleted = true WHERE id = ?`, deleted.ID)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	// Given a soft-deleted account
	// When we list with no filters
	// Then only active users appear, sorted by name then surname
	It("should hide soft-deleted users by default", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(2))
		Expect(envelope.Data[0]["fullname"]).To(Equal("Bob Smith"))
		Expect(envelope.Data[1]["fullname"]).To(Equal("Jane Doe"))
	})

	It("should humanize the primary role of each row", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Data[0]["role"]).To(Equal("User"))
		Expect(envelope.Data[1]["role"]).To(Equal("Admin"))
	})

	// Given the deleted yes/no filter set to yes
	// When we list
	// Then the filter takes over the soft-delete clause
	It("should show deleted users when the deleted filter asks for them", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			Filters: map[string]any{"deleted": true},
		}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["fullname"]).To(Equal("Karl Prior"))
	})

	It("should filter on the primary role through the custom predicate", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			Filters: map[string]any{"primary-role": []any{models.RoleAdmin}},
		}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["fullname"]).To(Equal("Jane Doe"))
	})

	// Given a term matching a surname
	// When we search
	// Then the name/surname group and the username field both participate
	It("should search the concatenated full name and the username", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			Search: "jane doe",
		}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["fullname"]).To(Equal("Jane Doe"))

		envelope, err = engine.List(ctx, vm, state, listing.ListRequest{
			Search: "bob@",
		}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["fullname"]).To(Equal("Bob Smith"))
	})

	It("should sort the full name column over both of its fields", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			SortBy:   []string{"fullname"},
			SortDesc: []bool{true},
		}, adminUser(), "/admin/users")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Data[0]["fullname"]).To(Equal("Jane Doe"))
		Expect(envelope.Data[1]["fullname"]).To(Equal("Bob Smith"))
	})
})
