package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/store/migrations"
)

var _ = Describe("ViewStateStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should return the empty string for absent keys", func() {
		value, err := s.ViewState().Get(ctx, 1, "admin_stores_filter_session_data")
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(""))
	})

	It("should round trip a value", func() {
		// Act
		err := s.ViewState().Set(ctx, 1, "admin_stores_search_term_encoded", "bm9ydGg=")
		Expect(err).NotTo(HaveOccurred())

		// Assert
		value, err := s.ViewState().Get(ctx, 1, "admin_stores_search_term_encoded")
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal("bm9ydGg="))
	})

	It("should overwrite an existing key", func() {
		Expect(s.ViewState().Set(ctx, 1, "admin_stores_paging_information", `{"currentPage":1}`)).To(Succeed())
		Expect(s.ViewState().Set(ctx, 1, "admin_stores_paging_information", `{"currentPage":3}`)).To(Succeed())

		value, err := s.ViewState().Get(ctx, 1, "admin_stores_paging_information")
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(`{"currentPage":3}`))
	})

	// Given two users saving under the same key
	// When each user reads it back
	// Then they see only their own value
	It("should isolate state between users", func() {
		Expect(s.ViewState().Set(ctx, 1, "admin_stores_sort_by_asc", `["name"]`)).To(Succeed())
		Expect(s.ViewState().Set(ctx, 2, "admin_stores_sort_by_asc", `["status"]`)).To(Succeed())

		first, err := s.ViewState().Get(ctx, 1, "admin_stores_sort_by_asc")
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(Equal(`["name"]`))

		second, err := s.ViewState().Get(ctx, 2, "admin_stores_sort_by_asc")
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(`["status"]`))
	})

	Describe("ForUser", func() {
		It("should scope reads and writes to the wrapped user", func() {
			// Arrange
			scoped := s.ViewState().ForUser(7)

			// Act
			Expect(scoped.Set(ctx, "admin_users_filter_session_data", `{"deleted":"no"}`)).To(Succeed())

			// Assert
			value, err := scoped.Get(ctx, "admin_users_filter_session_data")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(`{"deleted":"no"}`))

			other, err := s.ViewState().Get(ctx, 8, "admin_users_filter_session_data")
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(Equal(""))
		})
	})
})
