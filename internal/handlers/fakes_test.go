package handlers

import (
	"context"
	"sort"
	"time"

	"cookhub/internal/errs"
	"cookhub/internal/middleware"
	"cookhub/internal/models"
	"cookhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories so handler tests exercise the whole
// request → store → fan-out pipeline without a database.

type fakeUsers struct {
	byID map[primitive.ObjectID]*models.User
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUsers) seed(u models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cpy := u
	f.byID[u.ID] = &cpy
	return &cpy
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return errs.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id primitive.ObjectID, name, email, avatar string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	u.Name, u.Email, u.Avatar = name, email, avatar
	cpy := *u
	return &cpy, nil
}

func (f *fakeUsers) IncPostedRecipes(_ context.Context, id primitive.ObjectID, delta int) (int, error) {
	u, ok := f.byID[id]
	if !ok {
		return 0, errs.ErrNotFound
	}
	u.PostedRecipes += delta
	return u.PostedRecipes, nil
}

func (f *fakeUsers) SetRank(_ context.Context, id primitive.ObjectID, rank string) error {
	u, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.Rank = rank
	return nil
}

func (f *fakeUsers) NamesByID(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := map[primitive.ObjectID]string{}
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			names[id] = u.Name
		}
	}
	return names, nil
}

type fakeRecipes struct {
	byID map[primitive.ObjectID]*models.Recipe
}

var _ repository.RecipeRepository = (*fakeRecipes)(nil)

func newFakeRecipes() *fakeRecipes {
	return &fakeRecipes{byID: map[primitive.ObjectID]*models.Recipe{}}
}

func (f *fakeRecipes) seed(r models.Recipe) *models.Recipe {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cpy := r
	f.byID[r.ID] = &cpy
	return &cpy
}

func copyRecipe(r *models.Recipe) *models.Recipe {
	cpy := *r
	cpy.Likes = append([]primitive.ObjectID{}, r.Likes...)
	cpy.Reshares = append([]primitive.ObjectID{}, r.Reshares...)
	return &cpy
}

func (f *fakeRecipes) Create(_ context.Context, r *models.Recipe) error {
	r.ID = primitive.NewObjectID()
	f.byID[r.ID] = copyRecipe(r)
	return nil
}

func (f *fakeRecipes) GetByID(_ context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return copyRecipe(r), nil
}

func (f *fakeRecipes) All(_ context.Context) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, r := range f.byID {
		out = append(out, *copyRecipe(r))
	}
	return out, nil
}

func (f *fakeRecipes) ByCreator(_ context.Context, userID primitive.ObjectID) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, r := range f.byID {
		if r.CreatedBy == userID {
			out = append(out, *copyRecipe(r))
		}
	}
	return out, nil
}

func (f *fakeRecipes) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRecipes) set(r *models.Recipe, set repository.RecipeSet) *[]primitive.ObjectID {
	if set == repository.SetReshares {
		return &r.Reshares
	}
	return &r.Likes
}

func (f *fakeRecipes) AddToSet(_ context.Context, id primitive.ObjectID, set repository.RecipeSet, userID primitive.ObjectID) error {
	r, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	members := f.set(r, set)
	for _, m := range *members {
		if m == userID {
			return nil
		}
	}
	*members = append(*members, userID)
	return nil
}

func (f *fakeRecipes) RemoveFromSet(_ context.Context, id primitive.ObjectID, set repository.RecipeSet, userID primitive.ObjectID) error {
	r, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	members := f.set(r, set)
	kept := (*members)[:0]
	for _, m := range *members {
		if m != userID {
			kept = append(kept, m)
		}
	}
	*members = kept
	return nil
}

type fakePosts struct {
	byID map[primitive.ObjectID]*models.Post
}

var _ repository.PostRepository = (*fakePosts)(nil)

func newFakePosts() *fakePosts {
	return &fakePosts{byID: map[primitive.ObjectID]*models.Post{}}
}

func (f *fakePosts) seed(p models.Post) *models.Post {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cpy := p
	f.byID[p.ID] = &cpy
	return &cpy
}

func copyPost(p *models.Post) *models.Post {
	cpy := *p
	cpy.Comments = append([]models.Comment{}, p.Comments...)
	return &cpy
}

func (f *fakePosts) Create(_ context.Context, p *models.Post) error {
	p.ID = primitive.NewObjectID()
	f.byID[p.ID] = copyPost(p)
	return nil
}

func (f *fakePosts) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return copyPost(p), nil
}

func (f *fakePosts) All(_ context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range f.byID {
		out = append(out, *copyPost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePosts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePosts) IncVotes(_ context.Context, id primitive.ObjectID, up bool) error {
	p, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	if up {
		p.Upvotes++
	} else {
		p.Downvotes++
	}
	return nil
}

func (f *fakePosts) AddComment(_ context.Context, postID primitive.ObjectID, c models.Comment) error {
	p, ok := f.byID[postID]
	if !ok {
		return errs.ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	return nil
}

func (f *fakePosts) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	p, ok := f.byID[postID]
	if !ok {
		return errs.ErrNotFound
	}
	kept := p.Comments[:0]
	for _, cm := range p.Comments {
		if cm.ID != commentID {
			kept = append(kept, cm)
		}
	}
	p.Comments = kept
	return nil
}

type fakeNotifications struct {
	all []models.Notification
}

var _ repository.NotificationRepository = (*fakeNotifications)(nil)

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{}
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	f.all = append(f.all, *n)
	return nil
}

func (f *fakeNotifications) LatestForUser(_ context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
	mine := []models.Notification{}
	for _, n := range f.all {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (f *fakeNotifications) forUser(userID primitive.ObjectID) []models.Notification {
	out := []models.Notification{}
	for _, n := range f.all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// fakePublisher records every emission so tests can assert on event names
// and scoping.
type emission struct {
	userID string // empty for broadcasts
	event  string
	data   any
}

type fakePublisher struct {
	emitted []emission
}

var _ Publisher = (*fakePublisher)(nil)

func (f *fakePublisher) Broadcast(event string, data any) {
	f.emitted = append(f.emitted, emission{event: event, data: data})
}

func (f *fakePublisher) EmitTo(userID primitive.ObjectID, event string, data any) {
	f.emitted = append(f.emitted, emission{userID: userID.Hex(), event: event, data: data})
}

func (f *fakePublisher) byEvent(event string) []emission {
	out := []emission{}
	for _, e := range f.emitted {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

// identityAs stubs the auth guard with a fixed verified identity.
func identityAs(id primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, id)
		c.Next()
	}
}

func at(offset time.Duration) time.Time {
	return time.Now().Add(offset)
}
