package activity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// UploadWindow is the largest gap between two consecutive uploads that
// still chains them into one cluster.
const UploadWindow = 10 * time.Second

var quotedName = regexp.MustCompile(`["']([^"']+)["']`)

type timedActivity struct {
	Activity
	at time.Time
}

// Consolidate folds bursts of import/upload activities into one summary
// activity each. Uploads are clustered by chaining: an upload joins the
// current cluster when it is at most UploadWindow after the previous upload,
// so a long burst stays one cluster even if its ends are far apart.
// Single-member clusters, non-upload activities and uploads without a
// parseable timestamp pass through unchanged. The input is not modified.
func Consolidate(activities []Activity) []Activity {
	var (
		uploads []timedActivity
		others  []Activity
		undated []Activity
	)
	for _, a := range activities {
		if !a.IsUpload() {
			others = append(others, a)
			continue
		}
		at, ok := a.Timestamp()
		if !ok {
			undated = append(undated, a)
			continue
		}
		uploads = append(uploads, timedActivity{Activity: a, at: at})
	}

	sort.SliceStable(uploads, func(i, j int) bool {
		return uploads[i].at.Before(uploads[j].at)
	})

	out := make([]Activity, 0, len(activities))
	for _, cluster := range clusterUploads(uploads) {
		if len(cluster) == 1 {
			out = append(out, cluster[0].Activity)
			continue
		}
		out = append(out, summarize(cluster))
	}
	out = append(out, undated...)
	return append(out, others...)
}

func clusterUploads(sorted []timedActivity) [][]timedActivity {
	var (
		clusters [][]timedActivity
		current  []timedActivity
	)
	for _, u := range sorted {
		if len(current) > 0 && u.at.Sub(current[len(current)-1].at) > UploadWindow {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, u)
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

func summarize(cluster []timedActivity) Activity {
	var (
		totalMB  float64
		folders  = make(map[string]struct{})
		original = make([]OriginalActivity, 0, len(cluster))
	)
	for _, u := range cluster {
		totalMB += u.Metadata.Float(MetaFileSizeMB)
		name := uploadFilename(u.Activity)
		if folder, ok := parentFolder(name); ok {
			folders[folder] = struct{}{}
		}
		original = append(original, OriginalActivity{
			ID:          u.ID,
			Description: u.Description,
			Filename:    name,
		})
	}

	summary := cluster[0].Activity
	summary.Metadata = summary.Metadata.Clone()
	if summary.Metadata == nil {
		summary.Metadata = make(Metadata)
	}
	summary.Metadata[MetaConsolidated] = true
	summary.Metadata[MetaFileCount] = len(cluster)
	summary.Metadata[MetaFolderCount] = len(folders)
	summary.Metadata[MetaTotalSizeMB] = totalMB
	summary.Metadata[MetaOriginalActivities] = original
	summary.Description = DescribeUploads(len(cluster), len(folders), totalMB)
	return summary
}

// uploadFilename prefers metadata.filename and falls back to the first
// quoted substring of the description.
func uploadFilename(a Activity) string {
	if name := a.Metadata.String(MetaFilename); name != "" {
		return name
	}
	if m := quotedName.FindStringSubmatch(a.Description); m != nil {
		return m[1]
	}
	return ""
}

// parentFolder returns everything before the last path separator.
func parentFolder(name string) (string, bool) {
	i := strings.LastIndexAny(name, `/\`)
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

// DescribeUploads renders the summary line of a consolidated upload, e.g.
// "Uploaded 2 files from 1 folder (5.00 MB)".
func DescribeUploads(fileCount, folderCount int, totalMB float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Uploaded %d %s", fileCount, plural(fileCount, "file"))
	if folderCount > 0 {
		fmt.Fprintf(&b, " from %d %s", folderCount, plural(folderCount, "folder"))
	}
	if totalMB > 0 {
		fmt.Fprintf(&b, " (%s)", FormatSize(totalMB))
	}
	return b.String()
}

// FormatSize renders megabytes with two decimals, switching to GB at 1024 MB.
func FormatSize(mb float64) string {
	if mb < 1024 {
		return fmt.Sprintf("%.2f MB", mb)
	}
	return fmt.Sprintf("%.2f GB", mb/1024)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
