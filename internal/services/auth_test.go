package services_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/services"
	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/store/migrations"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

var _ = Describe("AuthService", func() {
	var (
		ctx  context.Context
		db   *sql.DB
		s    *store.Store
		auth *services.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		s = store.NewStore(db)
		auth = services.NewAuthService(s.Users(), "test-secret", time.Hour)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	createAccount := func() *models.User {
		user := &models.User{
			Name:     "Jane",
			Surname:  "Doe",
			Username: "jane@example.com",
			Roles:    []string{models.RoleAdmin},
		}
		Expect(auth.CreateUser(ctx, user, "s3cret-pass")).To(Succeed())
		return user
	}

	Describe("CreateUser", func() {
		It("should hash the password and default the timezone", func() {
			user := createAccount()

			stored, err := s.Users().FindByUsername(ctx, "jane@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ID).To(Equal(user.ID))
			Expect(stored.Password).NotTo(Equal("s3cret-pass"))
			Expect(stored.Password).To(HavePrefix("$2a$"))
			Expect(stored.Timezone).To(Equal("UTC"))
		})

		It("should reject an invalid username", func() {
			err := auth.CreateUser(ctx, &models.User{
				Name:     "Jane",
				Surname:  "Doe",
				Username: "not-an-email",
			}, "s3cret-pass")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Login", func() {
		It("should issue a verifiable token for valid credentials", func() {
			created := createAccount()

			token, user, err := auth.Login(ctx, "jane@example.com", "s3cret-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(created.ID))
			Expect(token).NotTo(BeEmpty())

			verified, err := auth.VerifyToken(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(verified.Username).To(Equal("jane@example.com"))
			Expect(verified.HasRole(models.RoleAdmin)).To(BeTrue())
		})

		It("should reject a wrong password", func() {
			createAccount()

			_, _, err := auth.Login(ctx, "jane@example.com", "wrong")
			Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
		})

		It("should reject an unknown username the same way", func() {
			_, _, err := auth.Login(ctx, "nobody@example.com", "whatever")
			Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
		})
	})

	Describe("VerifyToken", func() {
		It("should reject garbage tokens", func() {
			_, err := auth.VerifyToken(ctx, "not.a.token")
			Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
		})

		It("should reject tokens signed with another secret", func() {
			user := createAccount()

			other := services.NewAuthService(s.Users(), "other-secret", time.Hour)
			token, err := other.IssueToken(user)
			Expect(err).NotTo(HaveOccurred())

			_, err = auth.VerifyToken(ctx, token)
			Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
		})

		It("should reject expired tokens", func() {
			user := createAccount()

			expired := services.NewAuthService(s.Users(), "test-secret", -time.Minute)
			token, err := expired.IssueToken(user)
			Expect(err).NotTo(HaveOccurred())

			_, err = auth.VerifyToken(ctx, token)
			Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
		})

		// Given a valid token for an account deleted afterwards
		// When the token is verified
		// Then it no longer grants access
		It("should reject tokens of soft-deleted accounts", func() {
			user := createAccount()
			token, err := auth.IssueToken(user)
			Expect(err).NotTo(HaveOccurred())

			_, err = db.ExecContext(ctx, `UPDATE users SET soft_deleted = true WHERE id = ?`, user.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = auth.VerifyToken(ctx, token)
			Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
		})
	})
})
