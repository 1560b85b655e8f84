package dupes

import "path/filepath"

// GroupByDigest groups hashed candidates within each size bucket. Records
// missing from hashed (failed hashes) are skipped. Groups come out in bucket
// order; within a bucket, in order of their canonical file. The canonical is
// the first record of the bucket, in walk order, carrying that digest.
func GroupByDigest(buckets []SizeBucket, hashed []HashedRecord) []Group {
	digests := make(map[string]string, len(hashed))
	for _, hr := range hashed {
		digests[hr.Path] = hr.Digest
	}

	var groups []Group
	for _, bucket := range buckets {
		index := make(map[string]int)
		var local []Group

		for _, rec := range bucket.Files {
			digest, ok := digests[rec.Path]
			if !ok {
				continue
			}
			hr := HashedRecord{FileRecord: rec, Digest: digest}
			if i, found := index[digest]; found {
				local[i].Duplicates = append(local[i].Duplicates, hr)
				continue
			}
			index[digest] = len(local)
			local = append(local, Group{Size: bucket.Size, Digest: digest, Canonical: hr})
		}

		for _, g := range local {
			if len(g.Duplicates) > 0 {
				groups = append(groups, g)
			}
		}
	}
	return groups
}

// Flatten turns groups into the scan result: every non-canonical member,
// pointing at its canonical's path.
func Flatten(groups []Group) []Duplicate {
	out := make([]Duplicate, 0)
	for _, g := range groups {
		for _, d := range g.Duplicates {
			out = append(out, Duplicate{
				Path:        d.Path,
				Name:        filepath.Base(d.Path),
				Size:        d.Size,
				DuplicateOf: g.Canonical.Path,
			})
		}
	}
	return out
}
