/*
Package cash defines a simple implementation of fungible asset balances,
kept per account and per ticker, plus the allowances that let an operator
pull funds on behalf of an owner.

There is no logic in the coins, except that the balance of any coin may
not go below zero. Thus, this implementation is referred to as cash.
Simple and safe.

Gateway exposes these balances as the asset transfer gateway used by the
vault.
*/
package cash
