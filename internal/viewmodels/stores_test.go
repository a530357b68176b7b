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

func adminUser() *models.User {
	return &models.User{
		ID:       1,
		Name:     "Jane",
		Surname:  "Doe",
		Username: "jane@example.com",
		Roles:    []string{models.RoleAdmin},
		Timezone: "UTC",
	}
}

var _ = Describe("StoreViewModel", func() {
	var (
		ctx    context.Context
		db     *sql.DB
		s      *store.Store
		vm     *viewmodels.StoreViewModel
		engine *listing.Engine
		state  *listing.SessionState
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		s = store.NewStore(db)
		vm = viewmodels.NewStoreViewModel()
		engine = listing.NewEngine(db)
		state = listing.NewSessionState(listing.NewMemoryStateStore(), vm.SessionBucket())

		acme, err := s.Brands().Create(ctx, "Acme Foods")
		Expect(err).NotTo(HaveOccurred())
		zebra, err := s.Brands().Create(ctx, "Zebra Cafe")
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Stores().SaveBatch(ctx, []*models.Store{
			{Name: "Downtown", BrandID: acme.ID, Industry: "Restaurant", Status: models.StoreStatusOpen, APIID: "api-001"},
			{Name: "Uptown", BrandID: acme.ID, Industry: "Cafe", Status: models.StoreStatusOnboarding, APIID: "api-002"},
			{Name: "Riverside", BrandID: zebra.ID, Industry: "Cafe", Status: models.StoreStatusOpen, APIID: "api-003"},
		})).To(Succeed())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should gate access on the admin role", func() {
		Expect(vm.HasAccess(adminUser())).To(BeTrue())

		plain := adminUser()
		plain.Roles = nil
		Expect(vm.HasAccess(plain)).To(BeFalse())
	})

	It("should point the brand filter at the brands endpoint", func() {
		filters := vm.Filters()
		Expect(filters[0].Name()).To(Equal("brand"))
		Expect(filters[0].Serialize()).To(HaveKeyWithValue("url", "/api/filters/brands"))
		Expect(filters[1].Name()).To(Equal("status"))
	})

	// Given three stores across two brands
	// When we list without any request state
	// Then all rows come back sorted by the default name ascending
	It("should list stores sorted by name by default", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{}, adminUser(), "/admin/stores")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(3))
		Expect(envelope.Data).To(HaveLen(3))
		Expect(envelope.Data[0]["name"]).To(Equal("Downtown"))
		Expect(envelope.Data[1]["name"]).To(Equal("Riverside"))
		Expect(envelope.Data[2]["name"]).To(Equal("Uptown"))
		Expect(envelope.Data[0]["brand"]).To(Equal("Acme Foods"))
		Expect(envelope.Data[0]["statuses"]).NotTo(BeEmpty())
	})

	It("should filter by status values", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			Filters: map[string]any{"status": []any{int(models.StoreStatusOnboarding)}},
		}, adminUser(), "/admin/stores")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["name"]).To(Equal("Uptown"))
	})

	It("should filter by brand", func() {
		brand, err := s.Brands().FindByName(ctx, "Zebra Cafe")
		Expect(err).NotTo(HaveOccurred())

		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			Filters: map[string]any{"brand": []any{brand.ID}},
		}, adminUser(), "/admin/stores")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["name"]).To(Equal("Riverside"))
	})

	// Given a search term matching a brand name
	// When we list
	// Then the search also covers the joined brand column
	It("should search across name, api id and brand name", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			Search: "zebra",
		}, adminUser(), "/admin/stores")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["name"]).To(Equal("Riverside"))

		envelope, err = engine.List(ctx, vm, state, listing.ListRequest{
			Search: "api-002",
		}, adminUser(), "/admin/stores")
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Total).To(Equal(1))
		Expect(envelope.Data[0]["name"]).To(Equal("Uptown"))
	})

	It("should sort the brand column through its custom order", func() {
		envelope, err := engine.List(ctx, vm, state, listing.ListRequest{
			SortBy:   []string{"brand"},
			SortDesc: []bool{true},
		}, adminUser(), "/admin/stores")
		Expect(err).NotTo(HaveOccurred())

		Expect(envelope.Data[0]["brand"]).To(Equal("Zebra Cafe"))
		Expect(envelope.SortBy).To(Equal([]string{"brand"}))
		Expect(envelope.SortByDesc).To(Equal([]bool{true}))
	})
})
