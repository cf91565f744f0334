// Package seed populates a database with demo users and engagement. Every
// row goes through the service layer so the seeded counters match what the
// API would have produced. Intended for development and tests only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword satisfies the password policy and is shared by every
// seeded account.
const DefaultPassword = "Socialfeed123!"

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool

	// MaxCommentsPerPost and MaxSharesPerPost bound the random engagement
	// attached to each post. LikeRatio is the chance that a given user likes
	// a given post.
	MaxCommentsPerPost int
	MaxSharesPerPost   int
	LikeRatio          float64

	// When JWTSecret is set, Run signs a dev token for the first TokenCount
	// users.
	JWTSecret  string
	TokenTTL   time.Duration
	TokenCount int
}

// DefaultOptions returns a small, fully engaged data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:           10,
		NumPosts:           40,
		ShouldClean:        false,
		MaxCommentsPerPost: 4,
		MaxSharesPerPost:   2,
		LikeRatio:          0.3,
		TokenTTL:           24 * time.Hour,
		TokenCount:         3,
	}
}

// DevToken pairs a seeded user with a bearer token for manual testing.
type DevToken struct {
	UserID   uint
	Username string
	Token    string
}

// Result summarizes what a run created.
type Result struct {
	Users    []*models.User
	Posts    []*models.Post
	Comments int
	Likes    int
	Shares   int
	Tokens   []DevToken
}

// Seeder writes demo data through the services.
type Seeder struct {
	db         *gorm.DB
	faker      *gofakeit.Faker
	users      *service.UserService
	posts      *service.PostService
	comments   *service.CommentService
	engagement *service.EngagementService
}

// NewSeeder binds a seeder to db. A zero seed picks a random one.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	engagementRepo := repository.NewEngagementRepository(db)
	return &Seeder{
		db:         db,
		faker:      gofakeit.New(seed),
		users:      service.NewUserService(repository.NewUserRepository(db)),
		posts:      service.NewPostService(repository.NewPostRepository(db), service.DefaultPagination),
		comments:   service.NewCommentService(repository.NewCommentRepository(db), engagementRepo),
		engagement: service.NewEngagementService(engagementRepo),
	}
}

// Run creates users, posts and engagement according to opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	middleware.Logger.Info("seeding started", "users", opts.NumUsers, "posts", opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	res := &Result{}

	users, err := s.createUsers(ctx, opts.NumUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	res.Users = users
	if len(users) == 0 {
		return res, nil
	}

	posts, err := s.createPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	res.Posts = posts

	for _, post := range posts {
		if err := s.engage(ctx, post, users, opts, res); err != nil {
			return nil, fmt.Errorf("engage post %d: %w", post.ID, err)
		}
	}

	if opts.JWTSecret != "" {
		tokens, err := signTokens(users, opts)
		if err != nil {
			return nil, err
		}
		res.Tokens = tokens
	}

	middleware.Logger.Info("seeding completed",
		"users", len(res.Users),
		"posts", len(res.Posts),
		"comments", res.Comments,
		"likes", res.Likes,
		"shares", res.Shares,
	)
	return res, nil
}

// ClearAll removes every seeded table's rows.
func (s *Seeder) ClearAll(ctx context.Context) error {
	middleware.Logger.Info("clearing existing data")
	db := s.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE shares, likes, comments, posts, users RESTART IDENTITY CASCADE`).Error
	}
	for _, table := range []string{"shares", "likes", "comments", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// IsEmpty reports whether no users exist yet.
func IsEmpty(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *Seeder) createUsers(ctx context.Context, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := s.username(i)
		user, err := s.users.CreateUser(ctx, service.CreateUserInput{
			Username:  username,
			Email:     strings.ToLower(username) + "@example.com",
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
			Password:  DefaultPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// username builds a policy-compliant handle; the index suffix keeps it unique.
func (s *Seeder) username(i int) string {
	base := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s.faker.Username())
	if len(base) > 20 {
		base = base[:20]
	}
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("%s_%d", base, i+1)
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.faker.IntRange(0, len(users)-1)]

		in := service.CreatePostInput{Content: s.faker.Paragraph(1, s.faker.IntRange(1, 4), 12, " ")}
		if s.faker.Float64Range(0, 1) < 0.25 {
			url := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.faker.UUID())
			in.ImageURL = &url
		}

		post, err := s.posts.CreatePost(ctx, models.ActorFor(author.ID), in)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) engage(ctx context.Context, post *models.Post, users []*models.User, opts Options, res *Result) error {
	for i, n := 0, s.faker.IntRange(0, max(opts.MaxCommentsPerPost, 0)); i < n; i++ {
		commenter := users[s.faker.IntRange(0, len(users)-1)]
		if _, err := s.comments.CreateComment(ctx, models.ActorFor(commenter.ID), service.CreateCommentInput{
			PostID:  post.ID,
			Content: s.faker.Sentence(s.faker.IntRange(3, 15)),
		}); err != nil {
			return err
		}
		res.Comments++
	}

	// Each user likes a post at most once; a second toggle would undo it.
	for _, user := range users {
		if s.faker.Float64Range(0, 1) >= opts.LikeRatio {
			continue
		}
		if _, err := s.engagement.ToggleLike(ctx, models.ActorFor(user.ID), post.ID); err != nil {
			return err
		}
		res.Likes++
	}

	for i, n := 0, s.faker.IntRange(0, max(opts.MaxSharesPerPost, 0)); i < n; i++ {
		sharer := users[s.faker.IntRange(0, len(users)-1)]
		if _, err := s.engagement.SharePost(ctx, models.ActorFor(sharer.ID), post.ID); err != nil {
			return err
		}
		res.Shares++
	}
	return nil
}

func signTokens(users []*models.User, opts Options) ([]DevToken, error) {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	n := max(min(opts.TokenCount, len(users)), 0)

	tokens := make([]DevToken, 0, n)
	for _, user := range users[:n] {
		token, err := middleware.SignToken(opts.JWTSecret, user.ID, ttl)
		if err != nil {
			return nil, fmt.Errorf("sign token for %s: %w", user.Username, err)
		}
		tokens = append(tokens, DevToken{UserID: user.ID, Username: user.Username, Token: token})
	}
	return tokens, nil
}
