package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
)

// Target categories scanned by walking every file under the target's paths.
const (
	CategoryTemp   = "temp"
	CategoryAdobe  = "adobe"
	CategorySystem = "system"
)

// CleanTarget is one named group of locations whose contents are reclaimable.
type CleanTarget struct {
	// Name is the unique identifier for this target.
	Name string

	// Paths is the list of directories to scan.
	Paths []string

	// Description is shown next to every item found under Paths.
	Description string

	// Category is one of the Category* constants.
	Category string
}

// Catalog holds every location the category scanners consult. It is built
// from the environment once per run; tests build their own.
type Catalog struct {
	Home      string
	Downloads string
	Targets   []CleanTarget

	// VideoDirs are searched for stale videos.
	VideoDirs []string

	// SkipDirs are directory names (lowercase) never descended by the
	// junk and large-file scans.
	SkipDirs []string
}

var winEnvPattern = regexp.MustCompile(`%([^%]+)%`)

// expand resolves environment variables in a path, supporting both
// Windows %VAR% and Unix $VAR / ${VAR} syntax.
func expand(path string) string {
	path = winEnvPattern.ReplaceAllStringFunc(path, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
	return os.ExpandEnv(path)
}

// userProfile returns the user profile directory.
func userProfile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("USERPROFILE")
}

// localAppData returns the local app data directory.
func localAppData() string {
	return os.Getenv("LOCALAPPDATA")
}

// appData returns the roaming app data directory.
func appData() string {
	return os.Getenv("APPDATA")
}

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// systemRoot is usually the same as winDir, but can differ on
// multi-boot installs.
func systemRoot() string {
	if s := os.Getenv("SystemRoot"); s != "" {
		return s
	}
	return winDir()
}

func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

func programFilesX86() string {
	if p := os.Getenv("PROGRAMFILES(X86)"); p != "" {
		return p
	}
	return `C:\Program Files (x86)`
}

// DefaultSkipDirs are directory names the junk and large-file scans never enter.
var DefaultSkipDirs = []string{
	"windows",
	"program files",
	"program files (x86)",
	"programdata",
	"$recycle.bin",
	"system volume information",
}

// DefaultCatalog returns the locations for the running platform with
// environment variables expanded. Locations that do not exist are kept;
// scanners skip them.
func DefaultCatalog() Catalog {
	home := userProfile()
	cat := Catalog{
		Home:      home,
		Downloads: filepath.Join(home, "Downloads"),
		VideoDirs: []string{
			filepath.Join(home, "Videos"),
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Documents"),
		},
		SkipDirs: DefaultSkipDirs,
	}

	if runtime.GOOS == "windows" {
		cat.Targets = windowsTargets(home)
	} else {
		cat.Targets = unixTargets(home)
	}
	return cat
}

func windowsTargets(home string) []CleanTarget {
	local := localAppData()
	roaming := appData()

	return []CleanTarget{
		// ── Temp ────────────────────────────────────────────────
		{
			Name:        "UserTemp",
			Paths:       []string{os.TempDir(), expand("%TEMP%"), filepath.Join(local, "Temp")},
			Description: "User temporary files",
			Category:    CategoryTemp,
		},
		{
			Name:        "WindowsTemp",
			Paths:       []string{filepath.Join(winDir(), "Temp")},
			Description: "Windows temporary files",
			Category:    CategoryTemp,
		},
		{
			Name: "InternetCache",
			Paths: []string{
				filepath.Join(local, "Microsoft", "Windows", "INetCache"),
				filepath.Join(local, "Microsoft", "Windows", "Temporary Internet Files"),
			},
			Description: "Internet cache",
			Category:    CategoryTemp,
		},

		// ── Adobe ───────────────────────────────────────────────
		{
			Name: "AdobeCache",
			Paths: []string{
				filepath.Join(local, "Adobe"),
				filepath.Join(roaming, "Adobe"),
				filepath.Join(expand("%TEMP%"), "Adobe"),
				filepath.Join(os.TempDir(), "Adobe"),
				filepath.Join(home, "Documents", "Adobe"),
			},
			Description: "Adobe temporary files",
			Category:    CategoryAdobe,
		},

		// ── System ──────────────────────────────────────────────
		{
			Name:        "WindowsUpdateCache",
			Paths:       []string{filepath.Join(winDir(), "SoftwareDistribution", "Download")},
			Description: "Windows Update download cache",
			Category:    CategorySystem,
		},
		{
			Name:        "Prefetch",
			Paths:       []string{filepath.Join(winDir(), "Prefetch")},
			Description: "Prefetch data",
			Category:    CategorySystem,
		},
		{
			Name:        "WindowsLogs",
			Paths:       []string{filepath.Join(winDir(), "Logs")},
			Description: "Windows logs",
			Category:    CategorySystem,
		},
		{
			Name:        "SystemRootTemp",
			Paths:       []string{filepath.Join(systemRoot(), "Temp")},
			Description: "System temporary files",
			Category:    CategorySystem,
		},
	}
}

func unixTargets(home string) []CleanTarget {
	cache := filepath.Join(home, ".cache")
	if runtime.GOOS == "darwin" {
		cache = filepath.Join(home, "Library", "Caches")
	}

	return []CleanTarget{
		{
			Name:        "UserTemp",
			Paths:       []string{os.TempDir(), expand("$TMPDIR")},
			Description: "User temporary files",
			Category:    CategoryTemp,
		},
		{
			Name:        "ThumbnailCache",
			Paths:       []string{filepath.Join(cache, "thumbnails")},
			Description: "Thumbnail cache",
			Category:    CategoryTemp,
		},
		{
			Name: "AdobeCache",
			Paths: []string{
				filepath.Join(cache, "Adobe"),
				filepath.Join(home, "Library", "Application Support", "Adobe", "Common", "Media Cache Files"),
				filepath.Join(os.TempDir(), "Adobe"),
				filepath.Join(home, "Documents", "Adobe"),
			},
			Description: "Adobe temporary files",
			Category:    CategoryAdobe,
		},
		{
			Name:        "SystemLogs",
			Paths:       []string{"/var/log", filepath.Join(home, "Library", "Logs")},
			Description: "System logs",
			Category:    CategorySystem,
		},
		{
			Name:        "VarTmp",
			Paths:       []string{"/var/tmp"},
			Description: "Persistent temporary files",
			Category:    CategorySystem,
		},
	}
}

// TargetsFor returns the catalog's targets in the given category.
func (c Catalog) TargetsFor(category string) []CleanTarget {
	var result []CleanTarget
	for _, t := range c.Targets {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// NeverDeletePaths returns paths that must NEVER be deleted under any
// circumstances, nor any of their ancestors. On Windows the list uses
// environment variables to support installations on any drive letter.
func NeverDeletePaths() []string {
	if runtime.GOOS != "windows" {
		home := userProfile()
		return []string{
			"/",
			"/bin", "/boot", "/dev", "/etc", "/lib", "/lib64", "/proc",
			"/sbin", "/sys", "/usr", "/var/lib",
			"/System", "/Library", "/Applications",
			home,
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Desktop"),
		}
	}

	w := winDir()
	sd := systemDrive()
	return []string{
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "assembly"),
		filepath.Join(w, "System32", "config"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "bootmgr"),
		filepath.Join(sd, "EFI"),
		programFiles(),
		programFilesX86(),
		filepath.Join(sd, "Users"),
		programData(),
		filepath.Join(sd, "Recovery"),
		filepath.Join(w, "Installer"),
		filepath.Join(w, "servicing"),
		userProfile(),
	}
}
