package listing_test

import (
	sq "github.com/Masterminds/squirrel"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/retailops/backoffice/pkg/errors"
	"github.com/retailops/backoffice/pkg/listing"
)

var _ = Describe("Compiler search", func() {
	var (
		c    *listing.Compiler
		base sq.SelectBuilder
	)

	BeforeEach(func() {
		c = listing.NewCompiler("s", utcUser(), listing.SoftDeleteNone, map[string]listing.Relation{
			"brand": {Table: "brands", Alias: "b", On: "b.id = s.brand_id"},
		})
		base = sq.Select("s.*").From("stores s")
	})

	Describe("ApplySearch", func() {
		// Given a blank search term
		// When the search is applied
		// Then the query stays untouched
		It("should ignore blank terms", func() {
			// Act
			b, err := c.ApplySearch(base, []listing.SearchField{listing.FieldName("name")}, "   ", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			sqlStr, _, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlStr).To(Equal("SELECT s.* FROM stores s"))
		})

		// Given the AND search mode
		// When the search is applied
		// Then it fails with InvalidSearchModeError
		It("should reject the AND mode", func() {
			// Act
			_, err := c.ApplySearch(base, []listing.SearchField{listing.FieldName("name")}, "x", listing.SearchAnd)

			// Assert
			Expect(srvErrors.IsInvalidSearchModeError(err)).To(BeTrue())
		})

		// Given a single plain searchable field
		// When the search is applied
		// Then it matches the field case-insensitively with wildcards
		It("should match a plain field with ILIKE", func() {
			// Act
			b, err := c.ApplySearch(base, []listing.SearchField{listing.FieldName("name")}, "north", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			sqlStr, args, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlStr).To(ContainSubstring("s.name ILIKE ?"))
			Expect(args).To(Equal([]any{"%north%"}))
		})

		// Given a pipe-separated search term
		// When the search is applied
		// Then each segment becomes an independent OR-ed term
		It("should split terms on the pipe character", func() {
			// Act
			b, err := c.ApplySearch(base, []listing.SearchField{listing.FieldName("name")}, "north | south", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			_, args, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(args).To(Equal([]any{"%north%", "%south%"}))
		})

		// Given a term containing emoji
		// When the search is applied
		// Then the wide runes are stripped before matching
		It("should strip wide runes from terms", func() {
			// Act
			b, err := c.ApplySearch(base, []listing.SearchField{listing.FieldName("name")}, "caf\U0001F600e", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			_, args, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(args).To(Equal([]any{"%cafe%"}))
		})

		// Given a dotted relation field
		// When the search is applied
		// Then the relation joins once and the column qualifies by its alias
		It("should join relations for dotted fields", func() {
			// Arrange
			fields := []listing.SearchField{
				listing.FieldName("brand.name"),
				listing.FieldName("brand.slug"),
			}

			// Act
			b, err := c.ApplySearch(base, fields, "acme", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			sqlStr, args, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlStr).To(ContainSubstring("LEFT JOIN brands b ON b.id = s.brand_id"))
			Expect(sqlStr).NotTo(ContainSubstring("LEFT JOIN brands b ON b.id = s.brand_id LEFT JOIN brands"))
			Expect(sqlStr).To(ContainSubstring("b.name ILIKE ?"))
			Expect(sqlStr).To(ContainSubstring("b.slug ILIKE ?"))
			Expect(args).To(Equal([]any{"%acme%", "%acme%"}))
		})

		// Given a field group over two columns
		// When the search is applied
		// Then the columns concatenate with a space and match as one phrase
		It("should match field groups as a concatenated phrase", func() {
			// Arrange
			fields := []listing.SearchField{
				listing.FieldGroup{Fields: []string{"name", "surname"}},
			}

			// Act
			b, err := c.ApplySearch(base, fields, "jane doe", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			sqlStr, args, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlStr).To(ContainSubstring("COALESCE(s.name, '') || ' ' || COALESCE(s.surname, '') ILIKE ?"))
			Expect(args).To(Equal([]any{"%jane doe%"}))
		})

		// Given a field group with no members
		// When the search is applied
		// Then it fails with EmptySearchFieldGroupError
		It("should reject empty field groups", func() {
			// Act
			_, err := c.ApplySearch(base, []listing.SearchField{listing.FieldGroup{}}, "x", listing.SearchOr)

			// Assert
			Expect(srvErrors.IsEmptySearchFieldGroupError(err)).To(BeTrue())
		})

		// Given the reserved keywords-identifier field
		// When the search is applied
		// Then the search becomes an exact lookup and flags keyword mode
		It("should degenerate to an exact keyword lookup", func() {
			// Arrange
			fields := []listing.SearchField{
				listing.FieldName("name"),
				listing.FieldName(listing.KeywordsIdentifierField),
			}

			// Act
			b, err := c.ApplySearch(base, fields, "SKU-123", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(c.KeywordSearch()).To(BeTrue())
			sqlStr, args, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlStr).To(ContainSubstring("s.keywords_identifier = ?"))
			Expect(sqlStr).NotTo(ContainSubstring("ILIKE"))
			Expect(args).To(Equal([]any{"SKU-123"}))
		})

		// Given an extra raw condition in the field specs
		// When the search is applied
		// Then the condition guards every term group
		It("should AND a field condition onto each term group", func() {
			// Arrange
			fields := []listing.SearchField{
				listing.FieldName("name"),
				listing.FieldCondition("soft_deleted = false"),
			}

			// Act
			b, err := c.ApplySearch(base, fields, "north", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			sqlStr, _, err := b.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlStr).To(ContainSubstring("s.soft_deleted = false"))
		})

		// Given a function field spec
		// When the search is applied
		// Then the function receives the cleaned term and the builder
		It("should delegate function fields to the view model", func() {
			// Arrange
			var received string
			fields := []listing.SearchField{
				listing.FieldFunc(func(alias string, b sq.SelectBuilder, term string) sq.SelectBuilder {
					received = term
					return b
				}),
				listing.FieldName("name"),
			}

			// Act
			_, err := c.ApplySearch(base, fields, "  north  ", listing.SearchOr)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(received).To(Equal("north"))
		})
	})
})
