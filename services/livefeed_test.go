package services

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveFeedBroadcastsToSubscribers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	feed := NewLiveFeed()
	router := gin.New()
	router.GET("/live", feed.HandleWS)

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Wait for the hub to register the connection
	deadline := time.Now().Add(2 * time.Second)
	for feed.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, feed.ClientCount())

	feed.BroadcastDonation(DonationEvent{
		CampaignID:    7,
		CampaignTitle: "New Library Wing",
		DonorName:     "Grace Alum",
		Amount:        150,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(message), `"campaign_id":7`)
	assert.Contains(t, string(message), "Grace Alum")
}

func TestLiveFeedDropsEventsWithoutBlocking(t *testing.T) {
	feed := NewLiveFeed()

	// No subscribers and a bounded buffer; flooding must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			feed.BroadcastDonation(DonationEvent{CampaignID: uint(i), Amount: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked with no subscribers")
	}
}
