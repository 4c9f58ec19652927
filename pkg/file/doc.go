// Package file provides read-only access to the document tree that holds locale resources.
//
// The docs service never writes: resources are produced by the site build and published to
// a directory or a bucket. The package therefore exposes a single Reader interface with two
// backends and keeps the path handling and error classification shared between them.
//
// # Architecture
//
// Reader has three methods:
//
//   - ReadFile returns the whole content of a file, capped at a configurable size.
//   - Exists reports whether a file or directory is present. It never returns an error;
//     invalid paths and backend failures report false.
//   - List returns the direct children of a directory. S3 "directories" are common
//     prefixes under the "/" delimiter.
//
// Two implementations are provided:
//
//   - LocalStorage reads from a directory on disk. The directory must exist when the
//     storage is created.
//   - S3Storage reads objects from an S3 bucket or any S3-compatible service (MinIO, R2,
//     Spaces) through aws-sdk-go-v2. An optional key prefix scopes it to a sub-tree.
//
// Both normalise paths the same way: backslashes become slashes, leading slashes are
// dropped, and any ".." segment fails with ErrInvalidPath before the backend is touched.
//
// # Usage
//
//	store, err := file.NewLocalStorage("./public")
//	if err != nil {
//	    return err
//	}
//	data, err := store.ReadFile(ctx, "locales/en/docs.json")
//	if errors.Is(err, file.ErrFileNotFound) {
//	    // resource is missing
//	}
//
//	entries, err := store.List(ctx, "locales")
//	for _, e := range entries {
//	    if e.IsDir {
//	        fmt.Println(e.Name) // "en", "mm", ...
//	    }
//	}
//
// S3 storage is configured from the environment with S3Config:
//
//	var cfg file.S3Config
//	config.MustLoad(&cfg)
//	store, err := file.NewS3Storage(ctx, cfg)
//
// Tests inject a fake client with WithS3Client; everything else in the SDK stays out of
// the way.
//
// # Configuration
//
// S3Config reads S3_BUCKET, S3_REGION, S3_ACCESS_KEY_ID, S3_SECRET_KEY, S3_ENDPOINT,
// S3_PREFIX and S3_FORCE_PATH_STYLE. Static credentials are used only when both key and
// secret are set; otherwise the default AWS credential chain applies. Extra SDK settings go
// through WithS3ConfigOption and WithS3ClientOption.
//
// # Error Handling
//
// Failures are reported with package sentinels so callers can branch with errors.Is:
//
//   - ErrFileNotFound, ErrDirectoryNotFound: nothing at the path.
//   - ErrIsDirectory, ErrNotDirectory: the path has the wrong kind.
//   - ErrInvalidPath: traversal or malformed path.
//   - ErrAccessDenied: the backend refused the read.
//   - ErrFileTooLarge: the file exceeds the reader's size limit.
//
// S3 errors are classified from smithy API error codes (NoSuchKey, NotFound,
// AccessDenied, ...); anything unrecognised is wrapped with the operation name.
//
// # Performance Considerations
//
// ReadFile loads the whole file into memory, which is fine for docs manifests of a few
// hundred kilobytes. DefaultMaxFileSize (10 MB) protects the process from a misplaced
// artifact; lower it with WithLocalMaxFileSize or WithS3MaxFileSize.
package file
