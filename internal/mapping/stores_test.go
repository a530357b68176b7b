package mapping_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retailops/backoffice/internal/mapping"
	"github.com/retailops/backoffice/internal/models"
)

type fakeBrands struct {
	known map[string]int64
	next  int64
}

func newFakeBrands() *fakeBrands {
	return &fakeBrands{known: make(map[string]int64), next: 1}
}

func (f *fakeBrands) DiscoverBrandByName(_ context.Context, name string) (*models.Brand, error) {
	id, ok := f.known[name]
	if !ok {
		id = f.next
		f.next++
		f.known[name] = id
	}
	return &models.Brand{ID: id, Name: name}, nil
}

var _ = Describe("StoreTable", func() {
	var (
		ctx    context.Context
		brands *fakeBrands
		table  *mapping.Table[models.Store]
	)

	BeforeEach(func() {
		ctx = context.Background()
		brands = newFakeBrands()

		var err error
		table, err = mapping.StoreTable(brands)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should expose the spreadsheet header contract", func() {
		Expect(table.Headers()).To(Equal([]string{
			"Name", "Brand", "Industry", "Status", "API ID",
			"Facebook Verified", "Facebook Id", "Facebook Page Name", "Facebook URL",
			"Google Verified", "Google Place Id", "Google Location Id", "Google MAP URL",
			"TripAdvisor Verified", "TripAdvisor Id", "TripAdvisor Partner Property Id", "TripAdvisor URL",
			"Zomato Verified", "Zomato Id", "Zomato URL",
			"Instagram Verified", "Instagram Id", "Instagram URL",
			"Latitude", "Longitude",
		}))
		Expect(table.Identifier().Name).To(Equal("API ID"))
	})

	Describe("Export", func() {
		It("should render status names, booleans and coordinates", func() {
			lat := 51.5
			store := models.Store{
				Name:             "Downtown",
				BrandName:        "Acme Foods",
				Status:           models.StoreStatusPermanentlyClosed,
				APIID:            "api-001",
				FacebookVerified: true,
				Latitude:         &lat,
			}

			row := table.Export(&store)

			Expect(row[0]).To(Equal("Downtown"))
			Expect(row[1]).To(Equal("Acme Foods"))
			Expect(row[3]).To(Equal("Permanently Closed"))
			Expect(row[4]).To(Equal("api-001"))
			Expect(row[5]).To(Equal("Yes"))
			Expect(row[9]).To(Equal("No"))
			Expect(row[23]).To(Equal("51.5"))
			Expect(row[24]).To(Equal(""))
		})
	})

	Describe("Apply", func() {
		It("should populate a store from a row and discover its brand", func() {
			store := models.Store{APIID: "api-001"}

			failures := table.Apply(ctx, &store, map[string]string{
				"Name":              "Downtown",
				"Brand":             "Acme Foods",
				"Industry":          "Restaurant",
				"Status":            "Onboarding",
				"Facebook Verified": "yes",
				"Zomato Verified":   "garbage",
				"Latitude":          "51.5",
			})

			Expect(failures).To(BeEmpty())
			Expect(store.Name).To(Equal("Downtown"))
			Expect(store.BrandID).To(Equal(int64(1)))
			Expect(store.BrandName).To(Equal("Acme Foods"))
			Expect(store.Status).To(Equal(models.StoreStatusOnboarding))
			Expect(store.FacebookVerified).To(BeTrue())
			Expect(store.ZomatoVerified).To(BeFalse())
			Expect(store.Latitude).To(HaveValue(BeNumerically("~", 51.5, 1e-9)))
		})

		It("should reuse an already discovered brand", func() {
			first := models.Store{}
			second := models.Store{}

			Expect(table.Apply(ctx, &first, map[string]string{"Brand": "Acme Foods"})).To(BeEmpty())
			Expect(table.Apply(ctx, &second, map[string]string{"Brand": "Acme Foods"})).To(BeEmpty())

			Expect(first.BrandID).To(Equal(second.BrandID))
		})

		It("should report an unknown status name", func() {
			store := models.Store{}

			failures := table.Apply(ctx, &store, map[string]string{"Status": "Half Open"})

			Expect(failures).To(HaveKey("Status"))
		})

		It("should report a malformed coordinate", func() {
			store := models.Store{}

			failures := table.Apply(ctx, &store, map[string]string{"Longitude": "east"})

			Expect(failures).To(HaveKey("Longitude"))
		})
	})
})

var _ = Describe("Cell values", func() {
	DescribeTable("ParseBool",
		func(value string, expected bool) {
			Expect(mapping.ParseBool(value)).To(Equal(expected))
		},
		Entry("yes", "yes", true),
		Entry("Yes with casing", "YES", true),
		Entry("padded yes", "  yes ", true),
		Entry("no", "no", false),
		Entry("empty", "", false),
		Entry("unrecognized text", "maybe", false),
	)

	It("should format booleans as Yes and No", func() {
		Expect(mapping.FormatBool(true)).To(Equal("Yes"))
		Expect(mapping.FormatBool(false)).To(Equal("No"))
	})

	It("should treat empty coordinates as absent", func() {
		f, err := mapping.ParseFloat("")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(BeNil())
		Expect(mapping.FormatFloat(nil)).To(Equal(""))
	})
})
