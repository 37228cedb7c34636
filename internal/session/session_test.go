package session

import (
	"fmt"
	"sync"
	"testing"

	"auction-house/internal/auctionerrors"

	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetDelete(t *testing.T) {
	store := NewStore()

	sess := store.Create(42)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, int64(42), sess.UserID)

	got, err := store.Get(sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess, got)

	store.Delete(sess.Token)
	_, err = store.Get(sess.Token)
	require.ErrorIs(t, err, auctionerrors.ErrSessionNotFound)

	_, err = store.Get("no-such-token")
	require.ErrorIs(t, err, auctionerrors.ErrSessionNotFound)
}

func TestStore_WatchlistRoundTrip(t *testing.T) {
	store := NewStore()
	sess := store.Create(1)

	ids, err := store.Watchlist(sess.Token)
	require.NoError(t, err)
	require.Empty(t, ids, "fresh watchlist starts empty")

	require.NoError(t, store.AddToWatchlist(sess.Token, 10))
	require.NoError(t, store.AddToWatchlist(sess.Token, 20))

	// add then remove returns the watchlist to its prior state
	require.NoError(t, store.AddToWatchlist(sess.Token, 30))
	require.NoError(t, store.RemoveFromWatchlist(sess.Token, 30))

	ids, err = store.Watchlist(sess.Token)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 20}, ids)
}

func TestStore_WatchlistSetSemantics(t *testing.T) {
	store := NewStore()
	sess := store.Create(1)

	require.NoError(t, store.AddToWatchlist(sess.Token, 10))
	require.NoError(t, store.AddToWatchlist(sess.Token, 10), "duplicate add is a no-op")

	ids, err := store.Watchlist(sess.Token)
	require.NoError(t, err)
	require.Equal(t, []int64{10}, ids)

	require.True(t, store.IsWatching(sess.Token, 10))
	require.False(t, store.IsWatching(sess.Token, 99))
}

func TestStore_RemoveAbsentID(t *testing.T) {
	store := NewStore()
	sess := store.Create(1)

	require.NoError(t, store.AddToWatchlist(sess.Token, 10))

	err := store.RemoveFromWatchlist(sess.Token, 99)
	require.ErrorIs(t, err, auctionerrors.ErrNotWatched)

	ids, werr := store.Watchlist(sess.Token)
	require.NoError(t, werr)
	require.Equal(t, []int64{10}, ids, "failed remove leaves state intact")
}

func TestStore_UnknownSessionOperations(t *testing.T) {
	store := NewStore()

	require.ErrorIs(t, store.AddToWatchlist("ghost", 1), auctionerrors.ErrSessionNotFound)
	require.ErrorIs(t, store.RemoveFromWatchlist("ghost", 1), auctionerrors.ErrSessionNotFound)
	_, err := store.Watchlist("ghost")
	require.ErrorIs(t, err, auctionerrors.ErrSessionNotFound)
	require.False(t, store.IsWatching("ghost", 1))
}

func TestStore_ConcurrentSessions(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	tokens := make([]string, 50)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := store.Create(int64(i))
			tokens[i] = sess.Token
			for j := int64(0); j < 5; j++ {
				_ = store.AddToWatchlist(sess.Token, j)
			}
		}(i)
	}
	wg.Wait()

	for i, token := range tokens {
		ids, err := store.Watchlist(token)
		require.NoError(t, err, fmt.Sprintf("session %d", i))
		require.Len(t, ids, 5)
	}
}
