// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides the cryptographic primitives used by the [X.509] policy validators.
//
// It has two parts. [Codec] decodes and encodes certificates in [PEM], DER and [PKCS7] form.
// [Provider] is the narrow interface the extractor, resolver and key validator consume:
// certificate parsing, public key export, signature verification, private key parsing,
// key pairing, RSA-OAEP encryption and key details. [NewProvider] returns the default
// implementation over the standard library.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
