package suggest

import "fmt"

// params carries the optional substitution inputs a rule may use. Cheat
// sheets never substitute; advice rules may when target or cred are set.
type params struct {
	target string
	user   string
	pass   string
}

func (p params) hasTarget() bool {
	return p.target != ""
}

func (p params) hasCred() bool {
	return p.user != ""
}

// rule classifies one service by port number or name substring and
// contributes advisory lines and cheat-sheet commands. Rules are independent;
// a service matching several rules accumulates all of them in table order.
type rule struct {
	match  func(port int, name string) bool
	advice func(p params) []string
	cheats []string
}

func portIn(port int, candidates ...int) bool {
	for _, c := range candidates {
		if port == c {
			return true
		}
	}
	return false
}

func static(lines ...string) func(params) []string {
	return func(params) []string { return lines }
}

// rules is the fixed classification table. Order matters only for the
// concatenation order within a single service's output block.
var rules = []rule{
	{
		match: func(port int, name string) bool {
			return portIn(port, 80, 8080, 8000, 8888) || contains(name, "http")
		},
		advice: static(
			"HTTP enum: whatweb http://<target>:<port>",
			"Dir brute: ffuf -u http://<target>:<port>/FUZZ -w /usr/share/seclists/Discovery/Web-Content/raft-medium-directories.txt -ic",
			"Tech stack IDs, robots.txt, /.git/, backups, upload forms",
		),
		cheats: []string{
			"whatweb http://<target>:<port>",
			"ffuf -u http://<target>:<port>/FUZZ -w /usr/share/seclists/Discovery/Web-Content/raft-medium-directories.txt -ic",
			"gobuster dir -u http://<target>:<port>/ -w /usr/share/wordlists/dirb/common.txt -k",
		},
	},
	{
		match: func(port int, name string) bool { return port == 443 || contains(name, "https") },
		advice: static(
			"HTTPS: whatweb https://<target>:443",
			"Check TLS and vhosts; try httpx -title -status -ip -mc 200,301,302 https://<target>",
		),
		cheats: []string{
			"whatweb https://<target>:443",
			"httpx -title -status -ip -mc 200,301,302 https://<target>",
		},
	},
	{
		match: func(port int, name string) bool { return port == 22 || contains(name, "ssh") },
		advice: static(
			"Try default/weak creds if hints: ssh <user>@<target>",
			"Key-based attempts if id_rsa found; check allowroot, banner",
		),
		cheats: []string{
			"ssh <user>@<target> -p <port>",
			"ssh -i id_rsa <user>@<target>",
		},
	},
	{
		match: func(port int, name string) bool { return portIn(port, 139, 445) || contains(name, "smb") },
		advice: func(p params) []string {
			lines := []string{
				"List shares: smbclient -L //<target> -N",
				"Anonymous access: smbclient //<target>/share -N",
				"Enum: nxc smb <target> -u '' -p '' --shares",
			}
			if p.hasTarget() {
				lines = append(lines, fmt.Sprintf("Pull a share: smbclient //%s/share -N -c 'prompt OFF; recurse ON; mget *'", p.target))
			}
			return lines
		},
		cheats: []string{
			"smbclient -L //<target> -N",
			"smbclient //<target>/share -N",
			"nxc smb <target> -u '' -p '' --shares",
		},
	},
	{
		match: func(port int, name string) bool { return port == 21 || contains(name, "ftp") },
		advice: static(
			"Anonymous login: ftp <target> (user: anonymous)",
			"Mirror files, look for creds/scripts",
		),
		cheats: []string{
			"ftp <target>",
			"lftp -u anonymous,anonymous <target>",
		},
	},
	{
		match: func(port int, name string) bool { return port == 25 || contains(name, "smtp") },
		advice: static(
			"Enum users: smtp-user-enum -M VRFY -U users.txt -t <target>",
		),
		cheats: []string{
			"smtp-user-enum -M VRFY -U users.txt -t <target>",
		},
	},
	{
		match: func(port int, name string) bool { return port == 3306 || contains(name, "mysql") },
		advice: static(
			"Try creds if found: mysql -h <target> -u <user> -p",
			"File read via LOAD_FILE if perms; check version, users",
		),
		cheats: []string{
			"mysql -h <target> -P <port> -u <user> -p",
		},
	},
	{
		match: func(port int, name string) bool { return port == 5432 || contains(name, "postgres") },
		advice: static(
			"psql -h <target> -U <user> -W; enumerate dbs, creds",
		),
		cheats: []string{
			"psql -h <target> -p <port> -U <user> -W",
		},
	},
	{
		match: func(port int, name string) bool { return port == 1433 || contains(name, "mssql") },
		advice: func(p params) []string {
			if p.hasTarget() && p.hasCred() {
				return []string{
					fmt.Sprintf("Login: impacket-mssqlclient %s:%s@%s -windows-auth", p.user, p.pass, p.target),
					"Then: enable_xp_cmdshell; xp_cmdshell whoami",
					"Check impersonation: SELECT distinct b.name FROM sys.server_permissions a INNER JOIN sys.server_principals b ON a.grantor_principal_id = b.principal_id WHERE a.permission_name = 'IMPERSONATE'",
				}
			}
			return []string{
				"sqsh/mssqlclient.py: check xp_cmdshell, impersonation",
				"Login: impacket-mssqlclient <user>@<target> -windows-auth (prompt for pass)",
			}
		},
		cheats: []string{
			"impacket-mssqlclient <user>@<target> -windows-auth",
		},
	},
	{
		match: func(port int, name string) bool { return port == 6379 || contains(name, "redis") },
		advice: static(
			"redis-cli -h <target> info; check unauth, write ssh-key trick",
		),
		cheats: []string{
			"redis-cli -h <target> -p <port> info",
		},
	},
	{
		match: func(port int, name string) bool { return portIn(port, 111, 2049) || contains(name, "nfs") },
		advice: static(
			"Showmount: showmount -e <target>",
			"Mount rw export: sudo mount -t nfs <target>:/export /mnt/nfs",
		),
		cheats: []string{
			"showmount -e <target>",
			"sudo mount -t nfs <target>:/export /mnt/nfs",
		},
	},
	{
		match: func(port int, name string) bool { return port == 5985 || contains(name, "winrm") },
		advice: static(
			"evil-winrm -i <target> -u <user> -p <pass>",
		),
		cheats: []string{
			"evil-winrm -i <target> -u <user> -p <pass>",
		},
	},
	{
		match: func(port int, name string) bool { return port == 3389 || contains(name, "rdp") },
		advice: static(
			"xfreerdp /v:<target> /u:<user> /p:<pass> /cert:ignore",
		),
		cheats: []string{
			"xfreerdp /v:<target> /u:<user> /p:<pass> /cert:ignore",
		},
	},
}
