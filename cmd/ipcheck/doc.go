package main

// A REST host is not implemented here. A future one would expose
// POST /validate accepting multipart/form-data fields ip_file (binary,
// extension constrained to zip/tar/gz/gzip, max 40 MiB) and sha1 (hex),
// reject with 400 when the computed SHA1 of the upload disagrees, and
// otherwise call validate.Run and marshal its ValidationReport as the
// response body exactly as this CLI does for --verbose=false.
