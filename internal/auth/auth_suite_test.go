// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/samber/oops"

	"github.com/hackforge/hackforge/internal/auth"
)

func TestAuthSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Flow Suite")
}

// inMemoryUserRepo is a simple in-memory implementation of
// auth.UserRepository. It simulates database persistence without requiring
// PostgreSQL.
type inMemoryUserRepo struct {
	mu     sync.RWMutex
	byName map[string]*auth.User
	roles  map[ulid.ULID][]string
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{
		byName: make(map[string]*auth.User),
		roles:  make(map[ulid.ULID][]string),
	}
}

func (r *inMemoryUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[user.Username]; exists {
		return oops.Code("USER_DUPLICATE").Wrap(auth.ErrDuplicate)
	}
	r.byName[user.Username] = user
	return nil
}

func (r *inMemoryUserRepo) GetByID(_ context.Context, id ulid.ULID) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
}

func (r *inMemoryUserRepo) GetByName(_ context.Context, username string) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byName[username]
	if !ok {
		return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	return user, nil
}

func (r *inMemoryUserRepo) GetRoles(_ context.Context, userID ulid.ULID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[userID], nil
}

func (r *inMemoryUserRepo) SetRoles(_ context.Context, userID ulid.ULID, roles []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[userID] = append(r.roles[userID], roles...)
	return nil
}

var _ = Describe("Authentication flow", func() {
	var (
		ctx    context.Context
		repo   *inMemoryUserRepo
		svc    *auth.Service
		issuer *auth.TokenIssuer
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newInMemoryUserRepo()

		hasher, err := auth.NewBcryptHasher(4, "2b")
		Expect(err).NotTo(HaveOccurred())

		issuer, err = auth.NewTokenIssuer("HS256", "suite-secret", "")
		Expect(err).NotTo(HaveOccurred())

		svc, err = auth.NewService(repo, hasher, issuer)
		Expect(err).NotTo(HaveOccurred())
	})

	It("registers a user and authenticates with the same credentials", func() {
		user, err := svc.Register(ctx, "alice", "hunter2hunter2", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.PasswordHash).NotTo(ContainSubstring("hunter2"))

		got, err := svc.Authenticate(ctx, "alice", "hunter2hunter2")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ID).To(Equal(user.ID))
	})

	It("rejects a wrong password after registration", func() {
		_, err := svc.Register(ctx, "alice", "hunter2hunter2", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Authenticate(ctx, "alice", "wrong-password")
		Expect(err).To(HaveOccurred())

		oopsErr, ok := oops.AsOops(err)
		Expect(ok).To(BeTrue())
		Expect(oopsErr.Code()).To(Equal("AUTH_INVALID_CREDENTIALS"))
	})

	It("refuses to register the same username twice", func() {
		_, err := svc.Register(ctx, "alice", "hunter2hunter2", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Register(ctx, "alice", "other-password", "other@example.com")
		Expect(err).To(MatchError(auth.ErrDuplicate))
	})

	It("issues a session token that verifies back to the user", func() {
		user, err := svc.Register(ctx, "alice", "hunter2hunter2", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		token, err := svc.SessionToken(user)
		Expect(err).NotTo(HaveOccurred())

		claims, err := issuer.Verify(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims["user_id"]).To(Equal(user.ID.String()))
		Expect(claims["username"]).To(Equal("alice"))
		Expect(claims).To(HaveKey(auth.CreatedClaim))
	})

	It("keeps role grants additive", func() {
		user, err := svc.Register(ctx, "alice", "hunter2hunter2", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		Expect(repo.SetRoles(ctx, user.ID, []string{auth.RoleAdmin})).To(Succeed())
		Expect(repo.SetRoles(ctx, user.ID, []string{"judge"})).To(Succeed())

		roles, err := repo.GetRoles(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(roles).To(ConsistOf(auth.RoleAdmin, "judge"))
	})
})
