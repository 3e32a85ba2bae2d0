package extract

import (
	"testing"

	"github.com/eventscribe/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMeetingLinkVendorURLTrustedWithoutKeyword(t *testing.T) {
	html := `<html><body>
		<a href="https://zoom.us/j/98765432100">click here</a>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, html))
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformZoom, info.Platform)
	assert.Equal(t, "https://zoom.us/j/98765432100", info.URL)
	assert.Equal(t, types.ConfidenceHigh, info.Confidence)
	assert.False(t, info.Registration)
}

func TestFindMeetingLinkGoogleMeet(t *testing.T) {
	html := `<html><body>
		<a href="https://meet.google.com/abc-defg-hij">Video call</a>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, html))
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformMeet, info.Platform)
	assert.Equal(t, types.ConfidenceHigh, info.Confidence)
}

func TestFindMeetingLinkSkipsSocialDomains(t *testing.T) {
	html := `<html><body>
		<a href="https://facebook.com/events/12345">Join the event</a>
		<a href="https://twitter.com/someorg">Join us on Twitter</a>
	</body></html>`
	assert.Nil(t, FindMeetingLink(mustLoad(t, html)))
}

func TestFindMeetingLinkMediumTierNeedsKeyword(t *testing.T) {
	withKeyword := `<html><body>
		<a href="https://meetup.com/go-users/events/301">Attend this session</a>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, withKeyword))
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformConference, info.Platform)
	assert.Equal(t, types.ConfidenceMedium, info.Confidence)

	withoutKeyword := `<html><body>
		<a href="https://meetup.com/go-users/events/301">More details</a>
	</body></html>`
	assert.Nil(t, FindMeetingLink(mustLoad(t, withoutKeyword)))
}

func TestFindMeetingLinkLowTierNeedsRegisterKeyword(t *testing.T) {
	html := `<html><body>
		<a href="https://example.com/some/page">Register for the webinar</a>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, html))
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformConference, info.Platform)
	assert.Equal(t, types.ConfidenceLow, info.Confidence)
}

func TestFindMeetingLinkRegistrationFlag(t *testing.T) {
	html := `<html><body>
		<a href="https://zoom.us/register/abc123">Sign up</a>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, html))
	require.NotNil(t, info)
	assert.Equal(t, types.ConfidenceHigh, info.Confidence)
	assert.True(t, info.Registration)
}

func TestFindMeetingLinkDocumentOrderWins(t *testing.T) {
	html := `<html><body>
		<a href="https://teams.microsoft.com/l/meetup-join/19%3ameeting">Teams</a>
		<a href="https://zoom.us/j/11122233344">Zoom</a>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, html))
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformTeams, info.Platform)
}

func TestFindMeetingLinkTextFallback(t *testing.T) {
	html := `<html><body>
		<p>Dial in at https://meet.google.com/xyz-abcd-efg five minutes early.</p>
	</body></html>`
	info := FindMeetingLink(mustLoad(t, html))
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformMeet, info.Platform)
	assert.Equal(t, "https://meet.google.com/xyz-abcd-efg", info.URL)
}

func TestFindMeetingLinkInTextMeetingID(t *testing.T) {
	info := FindMeetingLinkInText("Zoom details below.\nMeeting ID: 987654321")
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformZoom, info.Platform)
	assert.Equal(t, "https://zoom.us/j/987654321", info.URL)
	assert.Equal(t, types.ConfidenceMedium, info.Confidence)
}

func TestFindMeetingLinkInTextShortIDIgnored(t *testing.T) {
	assert.Nil(t, FindMeetingLinkInText("Meeting ID: 12345"))
}

func TestFindMeetingLinkInTextLiteralZoomURL(t *testing.T) {
	info := FindMeetingLinkInText("Join via https://us02web.zoom.us/j/555666777 today")
	require.NotNil(t, info)
	assert.Equal(t, types.PlatformZoom, info.Platform)
	assert.Equal(t, types.ConfidenceHigh, info.Confidence)
}

func TestFindMeetingLinkNone(t *testing.T) {
	html := `<html><body><p>A quiet afternoon with no calls.</p><a href="https://example.com/about">About</a></body></html>`
	assert.Nil(t, FindMeetingLink(mustLoad(t, html)))
}
