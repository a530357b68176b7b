package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/store/migrations"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

var _ = Describe("BrandsStore", func() {
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

	Describe("FindByName", func() {
		It("should return not found for an unknown brand", func() {
			_, err := s.Brands().FindByName(ctx, "Nope")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should find a created brand by name", func() {
			// Arrange
			created, err := s.Brands().Create(ctx, "Acme Foods")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))

			// Act
			found, err := s.Brands().FindByName(ctx, "Acme Foods")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
			Expect(found.Name).To(Equal("Acme Foods"))
		})
	})

	Describe("List", func() {
		It("should return brands ordered by name", func() {
			// Arrange
			_, err := s.Brands().Create(ctx, "Zebra Cafe")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Brands().Create(ctx, "Acme Foods")
			Expect(err).NotTo(HaveOccurred())

			// Act
			brands, err := s.Brands().List(ctx)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(brands).To(HaveLen(2))
			Expect(brands[0].Name).To(Equal("Acme Foods"))
			Expect(brands[1].Name).To(Equal("Zebra Cafe"))
		})

		It("should return an empty list when no brands exist", func() {
			brands, err := s.Brands().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(brands).To(BeEmpty())
		})
	})
})
