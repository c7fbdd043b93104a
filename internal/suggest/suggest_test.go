package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodex23/htbCli/internal/challenge"
)

func TestSuggestEmptyServices(t *testing.T) {
	assert.Empty(t, Suggest(nil, true, "10.10.10.5", nil))
	assert.Empty(t, Cheatsheet(nil))
}

func TestSuggestVerbosePrependsGeneralTips(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 22, Proto: "tcp", Service: "ssh"}}

	entries := Suggest(services, true, "", nil)
	require.Len(t, entries, 2)
	assert.Equal(t, "General", entries[0].Title)
	assert.Len(t, strings.Split(entries[0].Text, "\n"), 3)
	assert.Equal(t, "22/tcp ssh", entries[1].Title)

	succinct := Suggest(services, false, "", nil)
	require.Len(t, succinct, 1)
	assert.Equal(t, "22/tcp ssh", succinct[0].Title)
}

func TestSuggestUnknownServiceContributesNothing(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 9929, Proto: "tcp", Service: "nping-echo"}}
	assert.Empty(t, Suggest(services, false, "", nil))
	assert.Empty(t, Cheatsheet(services))
}

func TestSuggestMissingPortActsAsZero(t *testing.T) {
	services := []challenge.ServiceRecord{{Proto: "tcp"}}
	assert.Empty(t, Suggest(services, false, "", nil))
}

func TestSuggestHTTPSMatchesBothWebRules(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 443, Proto: "tcp", Service: "https"}}

	entries := Suggest(services, false, "", nil)
	require.Len(t, entries, 1)
	// "https" matches the plain web rule by name and the TLS rule by port,
	// in table order.
	assert.Contains(t, entries[0].Text, "HTTP enum: whatweb")
	assert.Contains(t, entries[0].Text, "Check TLS and vhosts")
	httpIdx := strings.Index(entries[0].Text, "HTTP enum")
	tlsIdx := strings.Index(entries[0].Text, "Check TLS")
	assert.Less(t, httpIdx, tlsIdx)
}

func TestSuggestSMBTargetSubstitution(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 445, Proto: "tcp", State: "open", Service: "smb"}}

	entries := Suggest(services, false, "10.10.10.5", nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "445/tcp smb", entries[0].Title)
	assert.Contains(t, entries[0].Text, "smbclient //10.10.10.5/share")

	plain := Suggest(services, false, "", nil)
	require.Len(t, plain, 1)
	assert.NotContains(t, plain[0].Text, "10.10.10.5")
}

func TestSuggestMSSQLCredentialSubstitution(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 1433, Proto: "tcp", Service: "mssql"}}
	creds := []challenge.Credential{{User: "sa", Pass: "pw", Service: "mssql"}}

	entries := Suggest(services, false, "10.10.10.5", creds)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Text, "sa:pw@10.10.10.5")
	assert.NotContains(t, entries[0].Text, "prompt for pass")

	// Without a credential the generic variant comes back.
	generic := Suggest(services, false, "10.10.10.5", nil)
	require.Len(t, generic, 1)
	assert.Contains(t, generic[0].Text, "prompt for pass")
}

func TestPreferredCredential(t *testing.T) {
	services := []challenge.ServiceRecord{
		{Port: 80, Proto: "tcp", Service: "http"},
		{Port: 1433, Proto: "tcp", Service: "ms-sql"},
	}
	creds := []challenge.Credential{
		{User: "web", Pass: "a", Service: "ftp"},
		{User: "dba", Pass: "b", Service: "SQL"},
	}

	got := PreferredCredential(creds, services)
	require.NotNil(t, got)
	assert.Equal(t, "dba", got.User)

	// No service match falls back to the first credential.
	noMatch := PreferredCredential([]challenge.Credential{{User: "x", Service: "rdp"}, {User: "y"}}, services[:1])
	require.NotNil(t, noMatch)
	assert.Equal(t, "x", noMatch.User)

	assert.Nil(t, PreferredCredential(nil, services))
}

func TestCheatsheetSMBExactBlock(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 445, Proto: "tcp", State: "open", Service: "smb"}}

	entries := Cheatsheet(services)
	require.Len(t, entries, 1)
	assert.Equal(t, "445/tcp smb", entries[0].Title)
	assert.Equal(t, strings.Join([]string{
		"smbclient -L //<target> -N",
		"smbclient //<target>/share -N",
		"nxc smb <target> -u '' -p '' --shares",
	}, "\n"), entries[0].Text)
}

func TestCheatsheetNeverSubstitutes(t *testing.T) {
	services := []challenge.ServiceRecord{{Port: 1433, Proto: "tcp", Service: "mssql"}}
	entries := Cheatsheet(services)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Text, "<user>@<target>")
}

func TestCheatsheetDeduplicatesByServiceKey(t *testing.T) {
	services := []challenge.ServiceRecord{
		{Port: 445, Proto: "tcp", Service: "smb"},
		{Port: 445, Proto: "tcp", Service: "smb"},
	}
	entries := Cheatsheet(services)
	assert.Len(t, entries, 1)
}

func TestFilterTried(t *testing.T) {
	entries := []Entry{
		{Title: "445/tcp smb", Text: "smbclient -L //<target> -N"},
		{Title: "22/tcp ssh", Text: "ssh <user>@<target>"},
	}

	kept := FilterTried(entries, []string{"SMBCLIENT"})
	require.Len(t, kept, 1)
	assert.Equal(t, "22/tcp ssh", kept[0].Title)

	assert.Equal(t, entries, FilterTried(entries, nil))
}
