/*
Package vault implements a single-ledger custody vault.

Participants deposit one asset, the deposit asset, and are allocated an
amount of a second asset, the reward asset, computed from their deposits
by a ratio policy. Once the vault authority starts the distribution every
participant may claim the allocation exactly once.

The vault never moves value itself. All transfers are requested from a
Gateway. Ledger changes of an operation are staged in a cache of the store
before the gateway is called and are written only when the transfer
succeeded, so a failed operation leaves the store unchanged. A vault wide
lock rejects operations re-entering the vault while another one is in
progress.
*/
package vault
