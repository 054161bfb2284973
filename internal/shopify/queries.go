package shopify

// cartFields selects what the cart store needs from a Cart.
const cartFields = `
fragment CartFields on Cart {
  id
  checkoutUrl
  createdAt
  updatedAt
  totalQuantity
  cost {
    totalAmount { amount currencyCode }
    subtotalAmount { amount currencyCode }
  }
  lines(first: 250) {
    edges {
      node {
        id
        quantity
        cost { totalAmount { amount currencyCode } }
        merchandise {
          ... on ProductVariant {
            id
            title
            product { handle title }
          }
        }
        attributes { key value }
      }
    }
  }
}
`

const userErrorFields = `userErrors { code field message }`

const mutationCartCreate = `
mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFields

const mutationCartLinesAdd = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFields

const mutationCartLinesUpdate = `
mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFields

const mutationCartLinesRemove = `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFields

const queryCart = `
query GetCart($id: ID!) {
  cart(id: $id) { ...CartFields }
}
` + cartFields
