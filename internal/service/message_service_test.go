package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/chirp-social/internal/models"
	"github.com/chirp-social/internal/repository"
	"github.com/chirp-social/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	view, err := e.messages.Post(user.ID, &service.PostRequest{Text: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", view.Text)
	assert.Equal(t, user.ID, view.UserID)
	assert.Equal(t, "testuser", view.Username)

	count, err := e.messageRepo.CountByUserID(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteOwnMessage(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	view, err := e.messages.Post(user.ID, &service.PostRequest{Text: "testing a new message"})
	require.NoError(t, err)

	require.NoError(t, e.messages.Delete(user.ID, view.ID))

	count, err := e.messageRepo.CountByUserID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCannotDeleteAnotherUsersMessage(t *testing.T) {
	e := newEnv(t)
	alice := e.signup(t, "alice")
	bob := e.signup(t, "bob")

	view, err := e.messages.Post(alice.ID, &service.PostRequest{Text: "testing a new message"})
	require.NoError(t, err)

	err = e.messages.Delete(bob.ID, view.ID)
	assert.ErrorIs(t, err, service.ErrNotMessageOwner)

	// the owner's message is intact
	count, err := e.messageRepo.CountByUserID(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteUnknownMessageIsNotFound(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	err := e.messages.Delete(user.ID, 1284941827125)
	assert.ErrorIs(t, err, repository.ErrMessageNotFound)
}

func TestCannotLikeOwnMessage(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	view, err := e.messages.Post(user.ID, &service.PostRequest{Text: "hello"})
	require.NoError(t, err)

	err = e.messages.Like(user.ID, view.ID)
	assert.ErrorIs(t, err, service.ErrCannotLikeOwn)

	count, err := e.likeRepo.CountByMessage(view.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeIsIdempotent(t *testing.T) {
	e := newEnv(t)
	alice := e.signup(t, "alice")
	bob := e.signup(t, "bob")

	view, err := e.messages.Post(alice.ID, &service.PostRequest{Text: "hello"})
	require.NoError(t, err)

	require.NoError(t, e.messages.Like(bob.ID, view.ID))
	require.NoError(t, e.messages.Like(bob.ID, view.ID))
	require.NoError(t, e.messages.Like(bob.ID, view.ID))

	count, err := e.likeRepo.CountByMessage(view.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "likes behave as a set")

	require.NoError(t, e.messages.Unlike(bob.ID, view.ID))
	require.NoError(t, e.messages.Unlike(bob.ID, view.ID))

	count, err = e.likeRepo.CountByMessage(view.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeUnknownMessageIsNotFound(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	err := e.messages.Like(user.ID, 1284941827125)
	assert.ErrorIs(t, err, repository.ErrMessageNotFound)

	err = e.messages.Unlike(user.ID, 1284941827125)
	assert.ErrorIs(t, err, repository.ErrMessageNotFound)
}

func TestHomeFeedComposition(t *testing.T) {
	e := newEnv(t)
	testuser := e.signup(t, "testuser")
	followed := e.signup(t, "followinguser")
	follower := e.signup(t, "followeruser")

	// testuser follows followed; follower follows testuser but is not
	// followed back
	require.NoError(t, e.users.Follow(testuser.ID, followed.ID))
	require.NoError(t, e.users.Follow(follower.ID, testuser.ID))

	base := time.Now().Add(-time.Hour)
	post := func(userID uint, text string, at time.Time) {
		msg := &models.Message{Text: text, UserID: userID, CreatedAt: at}
		require.NoError(t, e.messageRepo.Create(msg))
	}
	post(testuser.ID, "own message", base.Add(1*time.Second))
	post(followed.ID, "followed message", base.Add(2*time.Second))
	post(follower.ID, "follower message", base.Add(3*time.Second))

	feed, err := e.messages.HomeFeed(testuser.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, "followed message", feed[0].Text, "newest first")
	assert.Equal(t, "own message", feed[1].Text)
	for _, v := range feed {
		assert.NotEqual(t, follower.ID, v.UserID,
			"messages of followers not followed back are excluded")
	}
}

func TestHomeFeedIsCapped(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < service.FeedLimit+20; i++ {
		msg := &models.Message{
			Text:      fmt.Sprintf("message %d", i),
			UserID:    user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, e.messageRepo.Create(msg))
	}

	feed, err := e.messages.HomeFeed(user.ID)
	require.NoError(t, err)
	assert.Len(t, feed, service.FeedLimit)
}

func TestPublicFeed(t *testing.T) {
	e := newEnv(t)
	alice := e.signup(t, "alice")
	bob := e.signup(t, "bob")

	_, err := e.messages.Post(alice.ID, &service.PostRequest{Text: "from alice"})
	require.NoError(t, err)
	_, err = e.messages.Post(bob.ID, &service.PostRequest{Text: "from bob"})
	require.NoError(t, err)

	feed, err := e.messages.PublicFeed()
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

// publishRecorder captures messages handed to the live feed
type publishRecorder struct {
	views []models.MessageView
}

func (p *publishRecorder) Publish(view models.MessageView) {
	p.views = append(p.views, view)
}

func TestPostPublishesToLiveFeed(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	rec := &publishRecorder{}
	messages := service.NewMessageService(e.messageRepo, e.followRepo, e.likeRepo, rec)

	view, err := messages.Post(user.ID, &service.PostRequest{Text: "hello"})
	require.NoError(t, err)

	require.Len(t, rec.views, 1)
	assert.Equal(t, view.ID, rec.views[0].ID)
	assert.Equal(t, "hello", rec.views[0].Text)
}
