/*
Package sigs provides basic authentication: it verifies ed25519 signatures
over a request payload and maintains per signer nonces for replay
protection. Verified signers are added to the context, where they are
exposed through the Authenticate type.
*/
package sigs
